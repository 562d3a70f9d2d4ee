package filter

import "testing"

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func TestIsEmpty(t *testing.T) {
	if !(Filter{}).IsEmpty() {
		t.Error("zero Filter should be empty")
	}
	if (Filter{Market: "New York"}).IsEmpty() {
		t.Error("filter with market should not be empty")
	}
	if (Filter{MinPrice: f64(0)}).IsEmpty() {
		t.Error("filter with explicit zero min price should not be empty")
	}
	if (Filter{SuperhostOnly: true}).IsEmpty() {
		t.Error("superhost-only filter should not be empty")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		f       Filter
		wantErr bool
	}{
		{"empty", Filter{}, false},
		{"full", Filter{PropertyType: "Apartment", MinPrice: f64(50), MaxPrice: f64(500), MinBedrooms: i(2)}, false},
		{"contradictory range allowed", Filter{MinPrice: f64(500), MaxPrice: f64(100)}, false},
		{"negative min price", Filter{MinPrice: f64(-1)}, true},
		{"negative max price", Filter{MaxPrice: f64(-1)}, true},
		{"negative bedrooms", Filter{MinBedrooms: i(-1)}, true},
		{"negative accommodates", Filter{MinAccommodates: i(-2)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
