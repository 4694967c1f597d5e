package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"voice-lab/audio"
	"voice-lab/domain"
)

// analyzer runs the quality pipeline on a single file and prints the
// verdict, for quick checks without the HTTP service.
func main() {
	logFile := flag.String("log-file", "", "Write pipeline logs to this file instead of discarding them")
	ffmpeg := flag.String("ffmpeg", "ffmpeg", "Path to the ffmpeg binary")
	ffprobe := flag.String("ffprobe", "ffprobe", "Path to the ffprobe binary")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <audio file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	input := flag.Arg(0)

	log, closeLog, err := buildLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	pipeline := audio.NewAnalyzer(log,
		audio.NewProber(log, audio.NewFFProbe(*ffprobe)),
		audio.NewConverter(log, *ffmpeg, ""),
	)

	report, err := pipeline.Analyze(context.Background(), input)
	if err != nil {
		color.Error.Printf("Analysis failed: %v\n", err)
		os.Exit(1)
	}

	printReport(input, report)
}

// buildLogger sends slog output to the requested file, or swallows it so
// the result table stays the only thing on screen.
func buildLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return log, func() { _ = f.Close() }, nil
}

func printReport(input string, report *domain.AnalysisReport) {
	fmt.Println()
	color.New(color.FgGreen, color.Bold).Println("  Audio Quality Analysis Results")
	fmt.Println()

	snr := fmt.Sprintf("%.2f dB", report.SNRdB)
	if math.IsInf(report.SNRdB, 1) {
		snr = "Infinity"
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	table.Append([]string{"File", input})
	table.Append([]string{"PESQ Score", fmt.Sprintf("%.2f", report.PESQScore)})
	table.Append([]string{"Quality", colorizeCategory(report.QualityCategory)})
	table.Append([]string{"SNR", snr})
	table.Append([]string{"Sample Rate", fmt.Sprintf("%d Hz", report.SampleRate)})
	table.Render()
	fmt.Println()
}

func colorizeCategory(category domain.QualityCategory) string {
	switch category {
	case domain.PoorQuality:
		return color.Red.Render(string(category))
	case domain.FairQuality:
		return color.Yellow.Render(string(category))
	case domain.GoodQuality:
		return color.Cyan.Render(string(category))
	default:
		return color.Green.Render(string(category))
	}
}
