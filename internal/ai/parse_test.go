package ai

import "testing"

func TestParsePredictions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantTop  string
		wantConf float64
		wantLen  int
		wantErr  bool
	}{
		{"single line", "plastic_bottle 0.93", "plastic_bottle", 0.93, 1, false},
		{"three lines", "plastic_bottle 0.93\nglass_jar 0.41\npaper 0.12", "plastic_bottle", 0.93, 3, false},
		{"colon separator", "metal_can: 0.77", "metal_can", 0.77, 1, false},
		{"percent confidence", "paper 93%", "paper", 0.93, 1, false},
		{"unsorted input resorted", "paper 0.12\nplastic_bottle 0.93", "plastic_bottle", 0.93, 2, false},
		{"chatter ignored", "Here are the results:\nplastic_bottle 0.93\nThank you!", "plastic_bottle", 0.93, 1, false},
		{"capped at three", "a 0.9\nbb 0.8\ncc 0.7\ndd 0.6", "a", 0.9, 3, false},
		{"no predictions", "nothing to see here", "", 0, 0, true},
		{"empty", "", "", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePredictions(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len=%d want=%d", len(got), tt.wantLen)
			}
			if got[0].Label != tt.wantTop || got[0].Confidence != tt.wantConf {
				t.Fatalf("top=(%q, %v) want=(%q, %v)", got[0].Label, got[0].Confidence, tt.wantTop, tt.wantConf)
			}
		})
	}
}
