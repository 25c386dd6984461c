package main

import (
	"easylearn/config"
	"easylearn/database"
	courseModels "easylearn/models/course"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
)

// Seeds the course catalog from a CSV export. Expected columns:
// title, subtitle, description, category, level, price, author_id
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		title := getField(row, headerIndex, "title")
		if title == "" {
			log.Printf("Row %d: missing title, skipping", i+1)
			skipped++
			continue
		}

		level := strings.ToUpper(getField(row, headerIndex, "level"))
		switch level {
		case "BEGINNER", "INTERMEDIATE", "ADVANCED":
		default:
			level = "BEGINNER"
		}

		course := courseModels.Course{
			Title:       title,
			Subtitle:    getField(row, headerIndex, "subtitle"),
			Description: getField(row, headerIndex, "description"),
			Category:    getField(row, headerIndex, "category"),
			Level:       level,
			Price:       parseInt64(getField(row, headerIndex, "price")),
			AuthorID:    uint(parseInt64(getField(row, headerIndex, "author_id"))),
			IsPublished: false,
			IsDeleted:   false,
		}

		// Update in place when a course with the same title and author exists
		var existing courseModels.Course
		result := database.Database.Db.
			Where("title = ? AND author_id = ? AND is_deleted = false", course.Title, course.AuthorID).
			First(&existing)

		if result.Error == nil {
			existing.Subtitle = course.Subtitle
			existing.Description = course.Description
			existing.Category = course.Category
			existing.Level = course.Level
			existing.Price = course.Price
			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Row %d: failed to update course %q: %v", i+1, course.Title, err)
				skipped++
				continue
			}
			updated++
			continue
		}

		if err := database.Database.Db.Create(&course).Error; err != nil {
			log.Printf("Row %d: failed to insert course %q: %v", i+1, course.Title, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import complete. Inserted: %d, Updated: %d, Skipped: %d", inserted, updated, skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
