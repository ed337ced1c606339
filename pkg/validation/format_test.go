package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "Pretty", format: "pretty", wantErr: false},
		{name: "CSV", format: "csv", wantErr: false},
		{name: "JSON", format: "json", wantErr: false},
		{name: "Unknown", format: "xml", wantErr: true},
		{name: "Empty", format: "", wantErr: true},
		{name: "Wrong case", format: "Pretty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}
