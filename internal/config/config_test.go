package config

import "testing"

func TestAwardOverrides(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]int
		wantErr bool
	}{
		{"empty", "", map[string]int{}, false},
		{"single", "metal=15", map[string]int{"METAL": 15}, false},
		{"full schedule", "metal=15,glass=12,plastic=10,paper=5",
			map[string]int{"METAL": 15, "GLASS": 12, "PLASTIC": 10, "PAPER": 5}, false},
		{"spaces and case", " Metal = 15 , glass=12 ", map[string]int{"METAL": 15, "GLASS": 12}, false},
		{"trailing comma", "metal=15,", map[string]int{"METAL": 15}, false},
		{"missing value", "metal", nil, true},
		{"non-numeric", "metal=lots", nil, true},
		{"negative", "metal=-5", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CategoryAwards: tt.raw}
			got, err := cfg.AwardOverrides()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("got[%q]=%d want %d", k, got[k], v)
				}
			}
		})
	}
}
