package utils

import (
	"easylearn/config"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".mov":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// SaveUploadedFile stores an upload under the configured upload directory
// and returns the path relative to it
func SaveUploadedFile(file *multipart.FileHeader, subDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}

	destDir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	newFilename := time.Now().Format("20060102150405") + "_" + uuid.New().String()[:8] + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.Join(subDir, newFilename), nil
}

// GetFileURL maps a stored relative path to its public URL
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return BaseFileURL() + "/" + filepath.ToSlash(filePath)
}
