package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ecoenergi/meu-contrato-solar/config"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/internal/db"
	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Imports legacy customer records from the spreadsheet the sales team kept
// before this system. Expected columns:
// full_name | tax_id | marital_status | nationality | profession | phone | email
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	customerRepo := repository.NewCustomerRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	customers, err := readCustomersFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total customers to import: %d\n", len(customers))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := customerRepo.BulkCreate(customers, batchSize); err != nil {
		log.Fatal("Failed to bulk create customers:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total customers imported: %d\n", len(customers))
}

func readCustomersFromXLSX(filePath string) ([]model.Customer, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var customers []model.Customer
	seenTaxIDs := make(map[string]bool)
	skippedCount := 0
	invalidTaxIDCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 2 {
			skippedCount++
			continue
		}

		fullName := strings.TrimSpace(cell(row, 0))
		taxID := util.Digits(cell(row, 1))
		maritalStatus := strings.ToLower(strings.TrimSpace(cell(row, 2)))
		nationality := strings.TrimSpace(cell(row, 3))
		profession := strings.TrimSpace(cell(row, 4))
		phone := util.Digits(cell(row, 5))
		email := strings.TrimSpace(cell(row, 6))

		if fullName == "" || taxID == "" {
			skippedCount++
			continue
		}

		if len(taxID) != 11 && len(taxID) != 14 {
			invalidTaxIDCount++
			skippedCount++
			continue
		}

		if seenTaxIDs[taxID] {
			skippedCount++
			continue
		}
		seenTaxIDs[taxID] = true

		customer := model.Customer{
			FullName:    fullName,
			Nationality: nationality,
			Profession:  profession,
			TaxID:       taxID,
			Phone:       phone,
			Email:       email,
		}

		// Individuals need a marital status; unknown labels are dropped.
		if util.DetectDocumentType(taxID) == util.DocumentCPF {
			if status, ok := parseMaritalStatus(maritalStatus); ok {
				customer.MaritalStatus = &status
			}
		}

		customers = append(customers, customer)

		if len(customers)%500 == 0 {
			fmt.Printf("Processed %d customers...\n", len(customers))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid customers: %d\n", len(customers))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)
	fmt.Printf("  Rows with invalid CPF/CNPJ: %d\n", invalidTaxIDCount)

	return customers, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseMaritalStatus accepts both the Portuguese spreadsheet labels and the
// internal values.
func parseMaritalStatus(s string) (model.MaritalStatus, bool) {
	switch s {
	case "solteiro", "solteira", "solteiro(a)", "single":
		return model.MaritalSingle, true
	case "casado", "casada", "casado(a)", "married":
		return model.MaritalMarried, true
	case "divorciado", "divorciada", "divorciado(a)", "divorced":
		return model.MaritalDivorced, true
	case "viuvo", "viúvo", "viuva", "viúva", "viúvo(a)", "widowed":
		return model.MaritalWidowed, true
	}
	return "", false
}
