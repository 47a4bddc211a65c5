package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"gigbud/database"
	"gigbud/internal/config"
	"gigbud/internal/models"
	"gigbud/internal/repository"
)

// Seeds the location reference table (cities and colleges) used by the
// prefix search endpoint. Runs once; re-running with --force replaces the
// table contents.
//
//	seed --file locations.txt          one "name,type" entry per line
//	seed                               built-in default city list
func main() {
	file := flag.String("file", "", "CSV file with name,type entries (type: city or college)")
	force := flag.Bool("force", false, "Seed even if the table already has rows")
	flag.Parse()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	locationRepo := repository.NewLocationRepository(db)

	count, err := locationRepo.Count()
	if err != nil {
		log.Fatalf("Failed to count locations: %v", err)
	}
	if count > 0 && !*force {
		log.Printf("Location table already has %d rows; use --force to reseed", count)
		return
	}

	entries := defaultLocations()
	if *file != "" {
		entries, err = readLocationFile(*file)
		if err != nil {
			log.Fatalf("Failed to read location file: %v", err)
		}
	}

	seeded := 0
	for _, entry := range entries {
		if err := locationRepo.Create(&entry); err != nil {
			log.Printf("Failed to seed location %q: %v", entry.Name, err)
			continue
		}
		seeded++
	}
	log.Printf("Seeded %d locations", seeded)
}

func readLocationFile(path string) ([]models.Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	var entries []models.Location
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		entry := models.Location{Name: name, Type: models.LocationTypeCity}
		if len(record) > 1 && strings.TrimSpace(record[1]) == models.LocationTypeCollege {
			entry.Type = models.LocationTypeCollege
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func defaultLocations() []models.Location {
	cities := []string{
		"Delhi", "Mumbai", "Bengaluru", "Hyderabad", "Chennai",
		"Kolkata", "Pune", "Ahmedabad", "Jaipur", "Lucknow",
	}
	var entries []models.Location
	for _, name := range cities {
		entries = append(entries, models.Location{Name: name, Type: models.LocationTypeCity})
	}
	return entries
}
