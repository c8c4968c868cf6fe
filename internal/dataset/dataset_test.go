package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Age", "age"},
		{"  Annual Salary ($) ", "annual_salary"},
		{"First--Name!!", "first_name"},
		{"___", "unnamed_column"},
		{"", "unnamed_column"},
		{"already_normal", "already_normal"},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, in := range []string{"Age", "Annual Salary ($)", "x__y", "Ärger"} {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("NormalizeName not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestNewRejectsDuplicateHeaders(t *testing.T) {
	// "Age" and "age " collide after normalization.
	_, err := New("d", []string{"Age", "age "}, [][]string{{"1", "2"}})
	var dup *DuplicateColumnError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want DuplicateColumnError", err)
	}
	if !IsSchemaError(err) {
		t.Error("duplicate header should be a schema error")
	}
}

func TestNewRejectsLimits(t *testing.T) {
	t.Run("no columns", func(t *testing.T) {
		_, err := New("d", nil, [][]string{{"1"}})
		var ce *ColumnCountError
		if !errors.As(err, &ce) {
			t.Fatalf("error = %v, want ColumnCountError", err)
		}
	})
	t.Run("too many columns", func(t *testing.T) {
		headers := make([]string, MaxColumns+1)
		for i := range headers {
			headers[i] = fmt.Sprintf("c%d", i)
		}
		_, err := New("d", headers, [][]string{{"1"}})
		var ce *ColumnCountError
		if !errors.As(err, &ce) {
			t.Fatalf("error = %v, want ColumnCountError", err)
		}
	})
	t.Run("empty", func(t *testing.T) {
		_, err := New("d", []string{"a"}, nil)
		var ee *EmptyDatasetError
		if !errors.As(err, &ee) {
			t.Fatalf("error = %v, want EmptyDatasetError", err)
		}
	})
	t.Run("too many rows", func(t *testing.T) {
		rows := make([][]string, MaxRows+1)
		for i := range rows {
			rows[i] = []string{"1"}
		}
		_, err := New("d", []string{"a"}, rows)
		var te *TooManyRowsError
		if !errors.As(err, &te) {
			t.Fatalf("error = %v, want TooManyRowsError", err)
		}
	})
}

func TestTypeInference(t *testing.T) {
	ds, err := New("d",
		[]string{"Age", "Active", "Flag", "Level", "City", "Joined"},
		[][]string{
			{"34", "Yes", "1", "0", "Oslo", "2024-01-15"},
			{"29", "No", "0", "1", "Bergen", "2024-02-20"},
			{"41", "yes", "1", "2", "Oslo", "2024-03-25"},
		})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := map[string]Type{
		"age":    TypeNumeric,
		"active": TypeBinary, // yes/no pattern
		"flag":   TypeBinary, // numeric 0/1 carve-out
		"level":  TypeNumeric,
		"city":   TypeCategorical,
		"joined": TypeDatetime,
	}
	for name, wt := range want {
		c, ok := ds.Column(name)
		if !ok {
			t.Fatalf("column %q missing", name)
		}
		if c.Type != wt {
			t.Errorf("column %q type = %s, want %s", name, c.Type, wt)
		}
	}
}

func TestDatetimeCoercionDropsStragglers(t *testing.T) {
	// The sample (first 10 values) all parse; a later junk value becomes
	// missing rather than failing the column.
	rows := make([][]string, 0, 12)
	for i := 1; i <= 11; i++ {
		rows = append(rows, []string{fmt.Sprintf("2024-01-%02d", i)})
	}
	rows = append(rows, []string{"not a date"})
	ds, err := New("d", []string{"When"}, rows)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c, _ := ds.Column("when")
	if c.Type != TypeDatetime {
		t.Fatalf("type = %s, want datetime", c.Type)
	}
	if got := c.MissingCount(); got != 1 {
		t.Errorf("missing count = %d, want 1 (the unparseable straggler)", got)
	}
}

func TestMissingTokensAndNumberParsing(t *testing.T) {
	ds, err := New("d", []string{"Amount"}, [][]string{
		{"1,250.50"}, {"N/A"}, {"null"}, {"300"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c, _ := ds.Column("amount")
	if c.Type != TypeNumeric {
		t.Fatalf("type = %s, want numeric", c.Type)
	}
	if got := c.MissingCount(); got != 2 {
		t.Errorf("missing count = %d, want 2", got)
	}
	nums := c.Numbers()
	if len(nums) != 2 || nums[0] != 1250.50 || nums[1] != 300 {
		t.Errorf("numbers = %v, want [1250.5 300]", nums)
	}
}

func TestShortRowsPadded(t *testing.T) {
	ds, err := New("d", []string{"A", "B"}, [][]string{
		{"1", "2"},
		{"3"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, _ := ds.Column("b")
	if !b.Cells[1].Missing() {
		t.Error("short row should pad trailing cells as missing")
	}
}

func TestOriginalNamesPreserved(t *testing.T) {
	ds, err := New("d", []string{" Annual Salary ($)"}, [][]string{{"50000"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c, ok := ds.Column("annual_salary")
	if !ok {
		t.Fatal("normalized column missing")
	}
	if c.Original != "Annual Salary ($)" {
		t.Errorf("original = %q", c.Original)
	}
	if got := ds.OriginalName("annual_salary"); got != "Annual Salary ($)" {
		t.Errorf("OriginalName = %q", got)
	}
}

func TestDerivedRevenue(t *testing.T) {
	ds, err := New("sales", []string{"Price", "Quantity"}, [][]string{
		{"100", "10"},
		{"200", "20"},
		{"300", ""},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rev, ok := ds.DerivedRevenue()
	if !ok {
		t.Fatal("expected derived revenue column")
	}
	nums := rev.Numbers()
	if len(nums) != 2 || nums[0] != 1000 || nums[1] != 4000 {
		t.Errorf("revenue = %v, want [1000 4000]", nums)
	}
	if !rev.Cells[2].Missing() {
		t.Error("row with missing quantity should yield missing revenue")
	}
	if sum := nums[0] + nums[1]; sum != 5000 {
		t.Errorf("total revenue = %g, want 5000", sum)
	}
}

func TestDerivedRevenueAbsentWithoutInputs(t *testing.T) {
	ds, err := New("d", []string{"Price"}, [][]string{{"10"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := ds.DerivedRevenue(); ok {
		t.Error("revenue should not synthesize without a quantity column")
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	content := "Name, Age\nAda, 36\nGrace, 85\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Name != "people" {
		t.Errorf("name = %q, want people", ds.Name)
	}
	if ds.Rows() != 2 {
		t.Errorf("rows = %d, want 2", ds.Rows())
	}
	age, ok := ds.Column("age")
	if !ok || age.Type != TypeNumeric {
		t.Errorf("age column missing or not numeric")
	}
}

func TestLoadTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.tsv")
	content := "Name\tAge\nAda\t36\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := ds.Column("age"); !ok {
		t.Error("tab-delimited columns not split")
	}
}

func TestLoadFileUnknownExtension(t *testing.T) {
	if _, err := LoadFile("data.parquet"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestCellString(t *testing.T) {
	cases := []struct {
		cell Cell
		want string
	}{
		{Cell{Kind: CellNumber, Num: 3.50}, "3.5"},
		{Cell{Kind: CellNumber, Num: 13000}, "13000"},
		{Cell{Kind: CellText, Text: "Oslo"}, "Oslo"},
		{Cell{Kind: CellMissing}, ""},
	}
	for _, c := range cases {
		if got := c.cell.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
