package google

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{CredentialsJSON: "{}"})
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if err.Error() != "missing spreadsheet id" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), Options{SpreadsheetID: "test-id"})
	if err == nil {
		t.Fatal("expected error without credentials")
	}
	if !strings.Contains(err.Error(), "missing service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_UnreadableCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Options{
		SpreadsheetID:   "test-id",
		CredentialsFile: filepath.Join(t.TempDir(), "missing.json"),
	})
	if err == nil {
		t.Fatal("expected error for missing credentials file")
	}
	if !strings.Contains(err.Error(), "read service account file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_ListOperations_NotInitialized(t *testing.T) {
	c := &Client{spreadsheetID: "test", sheetName: DefaultSheetName}
	if _, err := c.ListOperations(context.Background(), 1, 2024); err == nil {
		t.Fatal("expected error with nil service")
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		baseName string
		year     int
		expected string
	}{
		{"Operations", 2025, "2025 Operations"},
		{"Budget", 2024, "2024 Budget"},
		{"", 2023, ""}, // Empty base returns empty
		{"Test Sheet", 2022, "2022 Test Sheet"},
		{"2025 Already Prefixed", 2024, "2025 Already Prefixed"},
	}

	for _, tt := range tests {
		got := yearPrefixedName(tt.baseName, tt.year)
		if got != tt.expected {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q",
				tt.baseName, tt.year, got, tt.expected)
		}
	}
}

func TestToStrings(t *testing.T) {
	got := toStrings([]interface{}{" a ", 1500000.0, -45.2, 3.0, true})
	want := []string{"a", "1500000", "-45.2", "3", "true"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("toStrings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIndexOfAndSafeGet(t *testing.T) {
	headers := []string{"Date", " Label ID ", "Label"}
	if got := indexOf(headers, "label id"); got != 1 {
		t.Errorf("indexOf(label id) = %d", got)
	}
	if got := indexOf(headers, "Label"); got != 2 {
		t.Errorf("indexOf(Label) = %d", got)
	}
	if got := indexOf(headers, "Amount"); got != -1 {
		t.Errorf("indexOf(Amount) = %d", got)
	}
	if safeGet(headers, 5) != "" || safeGet(headers, -1) != "" || safeGet(headers, 0) != "Date" {
		t.Error("safeGet bounds")
	}
}
