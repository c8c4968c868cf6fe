// Package sample generates small built-in datasets for trying the tool
// without bringing your own file. Generation is seeded, so repeated runs
// produce identical files.
package sample

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

const seed = 42

type generator func(*rand.Rand) ([]string, [][]string)

var generators = map[string]generator{
	"employees": employees,
	"sales":     sales,
	"survey":    survey,
}

// Names lists the available sample datasets in stable order.
func Names() []string {
	out := make([]string, 0, len(generators))
	for name := range generators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Generate produces the header row and data rows for a named sample.
func Generate(name string) ([]string, [][]string, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown sample %q (available: employees, sales, survey)", name)
	}
	headers, rows := gen(rand.New(rand.NewSource(seed)))
	return headers, rows, nil
}

// Dataset builds a named sample directly as an in-memory dataset.
func Dataset(name string) (*dataset.Dataset, error) {
	headers, rows, err := Generate(name)
	if err != nil {
		return nil, err
	}
	return dataset.New(name, headers, rows)
}

// WriteCSV writes a named sample to path as CSV.
func WriteCSV(name, path string) error {
	headers, rows, err := Generate(name)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes a named sample to path as a single-sheet workbook.
func WriteXLSX(name, path string) error {
	headers, rows, err := Generate(name)
	if err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("write sheet row %d: %w", row, err)
	}
	return nil
}

func employees(r *rand.Rand) ([]string, [][]string) {
	headers := []string{
		"Employee ID", "Name", "Age", "Gender", "Department",
		"Salary", "Years Experience", "Performance Score", "Remote", "Hire Date",
	}
	first := []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Margaret", "Dennis", "Ken", "Radia"}
	last := []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Hamilton", "Ritchie", "Thompson", "Perlman"}
	genders := []string{"Male", "Female"}
	departments := []string{"Engineering", "Sales", "Marketing", "HR", "Finance"}

	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([][]string, 0, 100)
	for i := 0; i < 100; i++ {
		age := 22 + r.Intn(40)
		years := r.Intn(age - 20)
		if years > 25 {
			years = 25
		}
		salary := 40000 + years*3000 + r.Intn(20000)
		hired := start.AddDate(0, 0, r.Intn(3650))
		rows = append(rows, []string{
			fmt.Sprintf("E%04d", i+1),
			first[r.Intn(len(first))] + " " + last[r.Intn(len(last))],
			fmt.Sprintf("%d", age),
			genders[r.Intn(len(genders))],
			departments[r.Intn(len(departments))],
			fmt.Sprintf("%d", salary),
			fmt.Sprintf("%d", years),
			fmt.Sprintf("%.1f", 1.0+r.Float64()*4.0),
			yesNo(r),
			hired.Format("2006-01-02"),
		})
	}
	return headers, rows
}

func sales(r *rand.Rand) ([]string, [][]string) {
	headers := []string{
		"Order ID", "Date", "Region", "Product", "Category",
		"Price", "Quantity", "Discount", "Customer Segment", "Returned",
	}
	regions := []string{"North", "South", "East", "West"}
	products := []string{"Laptop", "Monitor", "Keyboard", "Mouse", "Headset", "Webcam", "Dock", "Cable"}
	categories := map[string]string{
		"Laptop": "Computers", "Monitor": "Displays", "Keyboard": "Accessories",
		"Mouse": "Accessories", "Headset": "Audio", "Webcam": "Video",
		"Dock": "Accessories", "Cable": "Accessories",
	}
	segments := []string{"Consumer", "Business", "Education"}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([][]string, 0, 200)
	for i := 0; i < 200; i++ {
		product := products[r.Intn(len(products))]
		price := 10.0 + r.Float64()*990.0
		rows = append(rows, []string{
			fmt.Sprintf("ORD-%05d", 10000+i),
			start.AddDate(0, 0, r.Intn(365)).Format("2006-01-02"),
			regions[r.Intn(len(regions))],
			product,
			categories[product],
			fmt.Sprintf("%.2f", price),
			fmt.Sprintf("%d", 1+r.Intn(10)),
			fmt.Sprintf("%.2f", float64(r.Intn(4))*0.05),
			segments[r.Intn(len(segments))],
			yesNo(r),
		})
	}
	return headers, rows
}

func survey(r *rand.Rand) ([]string, [][]string) {
	headers := []string{
		"Response ID", "Age", "Gender", "Income", "Satisfaction",
		"Would Recommend", "Usage Per Week", "Plan", "Signup Date", "Churned",
	}
	genders := []string{"Male", "Female"}
	plans := []string{"Free", "Basic", "Pro", "Enterprise"}

	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := make([][]string, 0, 150)
	for i := 0; i < 150; i++ {
		satisfaction := 1 + r.Intn(5)
		recommend := "No"
		if satisfaction >= 4 || r.Intn(10) == 0 {
			recommend = "Yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("R%04d", i+1),
			fmt.Sprintf("%d", 18+r.Intn(55)),
			genders[r.Intn(len(genders))],
			fmt.Sprintf("%d", 20000+r.Intn(130000)),
			fmt.Sprintf("%d", satisfaction),
			recommend,
			fmt.Sprintf("%d", r.Intn(40)),
			plans[r.Intn(len(plans))],
			start.AddDate(0, 0, r.Intn(500)).Format("2006-01-02"),
			yesNo(r),
		})
	}
	return headers, rows
}

func yesNo(r *rand.Rand) string {
	if r.Intn(2) == 0 {
		return "No"
	}
	return "Yes"
}
