package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// TargetSampleRate is the rate every signal is conditioned to before
// scoring. Reports always carry this value.
const TargetSampleRate = 16000

type QualityCategory string

const (
	PoorQuality        QualityCategory = "Poor Quality"
	FairQuality        QualityCategory = "Fair Quality"
	GoodQuality        QualityCategory = "Good Quality"
	ExcellentQuality   QualityCategory = "Excellent Quality"
	OutstandingQuality QualityCategory = "Outstanding Quality"
)

// Categorize buckets a PESQ score into one of five labels. Boundary
// values belong to the upper bucket, so exactly 1.0 is already Fair.
func Categorize(score float64) QualityCategory {
	switch {
	case score < 1:
		return PoorQuality
	case score < 2:
		return FairQuality
	case score < 3:
		return GoodQuality
	case score < 4:
		return ExcellentQuality
	default:
		return OutstandingQuality
	}
}

// AnalysisReport is the outcome of one quality analysis. SNRdB may be
// +Inf when the noise floor is exactly zero; every other numeric field
// is rounded to two decimals.
type AnalysisReport struct {
	PESQScore       float64         `json:"pesq_score" msgpack:"pesq_score"`
	QualityCategory QualityCategory `json:"quality_category" msgpack:"quality_category"`
	SNRdB           float64         `json:"snr_db" msgpack:"snr_db"`
	SampleRate      int             `json:"sample_rate" msgpack:"sample_rate"`
}

// MarshalJSON writes an infinite SNRdB as the bare literal Infinity.
// encoding/json refuses non-finite floats, and the sentinel must reach
// clients losslessly rather than collapse to some large finite number.
func (r AnalysisReport) MarshalJSON() ([]byte, error) {
	type plain AnalysisReport
	snr := json.RawMessage("Infinity")
	switch {
	case math.IsInf(r.SNRdB, -1):
		snr = json.RawMessage("-Infinity")
	case !math.IsInf(r.SNRdB, 1):
		var err error
		if snr, err = json.Marshal(r.SNRdB); err != nil {
			return nil, err
		}
	}
	return json.Marshal(struct {
		plain
		SNRdB json.RawMessage `json:"snr_db"`
	}{plain(r), snr})
}

// UnmarshalJSON accepts the Infinity literal emitted by MarshalJSON.
func (r *AnalysisReport) UnmarshalJSON(data []byte) error {
	type plain AnalysisReport
	var raw struct {
		plain
		SNRdB json.RawMessage `json:"snr_db"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = AnalysisReport(raw.plain)
	switch string(raw.SNRdB) {
	case "Infinity":
		r.SNRdB = math.Inf(1)
	case "-Infinity":
		r.SNRdB = math.Inf(-1)
	case "", "null":
		r.SNRdB = 0
	default:
		if err := json.Unmarshal(raw.SNRdB, &r.SNRdB); err != nil {
			return fmt.Errorf("parsing snr_db: %w", err)
		}
	}
	return nil
}

// Round2 rounds to two decimals, passing infinities through untouched.
func Round2(v float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}
