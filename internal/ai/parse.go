package ai

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	predLine       = regexp.MustCompile(`^\s*([a-zA-Z][a-zA-Z0-9_\- ]*?)[\s:]+([0-9]*\.?[0-9]+)\s*%?\s*$`)
	ErrParseFailed = errors.New("parse_failed")
)

// ParsePredictions extracts ranked (label, confidence) pairs from model
// output. It expects one "label confidence" pair per line but tolerates
// separators and percent confidences ("plastic_bottle: 93%"). The result
// is sorted by confidence descending and never empty on success.
func ParsePredictions(text string) ([]Prediction, error) {
	var preds []Prediction
	for _, line := range strings.Split(text, "\n") {
		m := predLine.FindStringSubmatch(line)
		if len(m) < 3 {
			continue
		}
		conf, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		if conf > 1 {
			conf = conf / 100
		}
		if conf < 0 {
			conf = 0
		} else if conf > 1 {
			conf = 1
		}
		preds = append(preds, Prediction{
			Label:      strings.ToLower(strings.TrimSpace(m[1])),
			Confidence: conf,
		})
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("%w: no predictions found", ErrParseFailed)
	}
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Confidence > preds[j].Confidence
	})
	if len(preds) > 3 {
		preds = preds[:3]
	}
	return preds, nil
}
