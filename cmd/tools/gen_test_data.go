package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jung-kurt/gofpdf"
)

func main() {
	// Dossier de destination pour les scénarios e2e
	outputDir := "./test_data"
	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		panic(fmt.Sprintf("Impossible de créer le dossier : %v", err))
	}

	fmt.Println("🚀 Voice-Lab : Génération des fichiers de test...")

	// 1. Sinusoïde propre 16 kHz mono (déjà au format canonique, zéro conversion)
	genSineWAV(filepath.Join(outputDir, "sine_16k_mono.wav"), 16000, 1, 440)

	// 2. Sinusoïde stéréo 44.1 kHz (force downmix + resample)
	genSineWAV(filepath.Join(outputDir, "sine_44k_stereo.wav"), 44100, 2, 440)

	// 3. Silence total (SNR attendu : 0.0)
	genSilenceWAV(filepath.Join(outputDir, "silence_16k.wav"), 16000)

	// 4. Un vrai PDF déguisé en .wav (le prober doit le démasquer)
	genPDF(filepath.Join(outputDir, "document.pdf.wav"))

	fmt.Println("\n✅ Prêt ! Tu peux maintenant lancer les scénarios e2e sur ./test_data")
}

// genSineWAV écrit une seconde de sinusoïde à 440 Hz, 16-bit PCM
func genSineWAV(path string, rate, channels int, freq float64) {
	data := make([]int, rate*channels)
	for i := 0; i < rate; i++ {
		v := int(0.5 * 32767 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
		for c := 0; c < channels; c++ {
			data[i*channels+c] = v
		}
	}
	writeWAV(path, rate, channels, data)
}

// genSilenceWAV écrit une seconde de zéros purs
func genSilenceWAV(path string, rate int) {
	writeWAV(path, rate, 1, make([]int, rate))
}

func writeWAV(path string, rate, channels int, data []int) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Printf("❌ Erreur WAV : %v\n", err)
		return
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		fmt.Printf("❌ Erreur WAV : %v\n", err)
		return
	}
	if err := enc.Close(); err != nil {
		fmt.Printf("❌ Erreur WAV : %v\n", err)
		return
	}
	fmt.Printf("🎵 WAV généré : %s (%d Hz, %d canaux)\n", path, rate, channels)
}

// genPDF crée un document que le sniffing doit classer application/pdf
// malgré son extension .wav
func genPDF(path string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(40, 20, "Voice-Lab : Faux audio")
	pdf.Ln(20)

	pdf.SetFont("Arial", "", 12)
	content := "Ceci n'est pas un fichier audio.\n" +
		"Le prober doit le rejeter avec UnsupportedFormatError."
	pdf.MultiCell(0, 10, content, "", "", false)

	err := pdf.OutputFileAndClose(path)
	if err != nil {
		fmt.Printf("❌ Erreur PDF : %v\n", err)
	} else {
		fmt.Printf("📄 PDF généré : %s\n", path)
	}
}
