package audio

import (
	"context"
	"log/slog"

	"voice-lab/domain"
)

// Analyzer wires the probe, convert, decode, degrade and score stages
// into the full quality pipeline. It holds no per-call state, so one
// Analyzer may serve any number of concurrent invocations.
type Analyzer struct {
	log       *slog.Logger
	prober    *Prober
	converter *Converter
}

func NewAnalyzer(log *slog.Logger, prober *Prober, converter *Converter) *Analyzer {
	return &Analyzer{
		log:       log,
		prober:    prober,
		converter: converter,
	}
}

// Analyze runs the full pipeline over the file at path and returns the
// quality report. The input file is never modified or deleted; any
// intermediate WAV the converter creates is removed on every path out
// of this call. The category is derived from the raw score, rounding
// only touches the reported values.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*domain.AnalysisReport, error) {
	detected, err := a.prober.Detect(ctx, path)
	if err != nil {
		return nil, err
	}

	conv, err := a.converter.ToWAV(ctx, path, detected)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conv.Cleanup(); err != nil {
			a.log.Warn("temp cleanup failed", "error", err)
		}
	}()

	sig, err := DecodeWAV(conv.WAVPath)
	if err != nil {
		return nil, err
	}
	a.log.Info("audio decoded", "samples", len(sig.Samples), "rate", sig.Rate)

	samples := sig.Samples
	if sig.Rate != domain.TargetSampleRate {
		a.log.Info("resampling", "from", sig.Rate, "to", domain.TargetSampleRate)
		samples = Resample(samples, sig.Rate, domain.TargetSampleRate)
	}

	degraded, noise := Degrade(samples)

	score, err := ScorePESQ(domain.TargetSampleRate, samples, degraded, Narrowband)
	if err != nil {
		return nil, err
	}
	snr := EstimateSNR(samples, noise)
	a.log.Info("analysis complete", "pesq", score, "snr", snr)

	return &domain.AnalysisReport{
		PESQScore:       domain.Round2(score),
		QualityCategory: domain.Categorize(score),
		SNRdB:           domain.Round2(snr),
		SampleRate:      domain.TargetSampleRate,
	}, nil
}
