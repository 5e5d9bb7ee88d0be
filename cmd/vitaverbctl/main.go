// Command vitaverbctl runs the vitaverb reverb engine over a WAV file.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/sndforge/vitaverb"
	"github.com/sndforge/vitaverb/internal/config"
	"github.com/sndforge/vitaverb/internal/dsp"
	"github.com/sndforge/vitaverb/internal/wavio"
)

func main() {
	var (
		inPath     = pflag.StringP("in", "i", "", "input WAV file (required)")
		outPath    = pflag.StringP("out", "o", "", "output WAV file (required)")
		configPath = pflag.StringP("config", "c", "", "optional YAML config file")

		mix             = pflag.Float32("mix", -1, "dry/wet mix [0,1]")
		size            = pflag.Float32("size", -1, "network size [0,1]")
		decay           = pflag.Float32("decay", -1, "decay time in seconds")
		delay           = pflag.Float32("delay", -1, "pre-delay in seconds")
		width           = pflag.Float32("width", -2, "stereo width [-1,1]")
		chorusFreq      = pflag.Float32("chorus-freq", -1, "chorus rate in Hz")
		chorusAmount    = pflag.Float32("chorus-amount", -1, "chorus depth [0,1]")
		preLowCut       = pflag.Float32("pre-low-cut", -1, "pre-filter low cutoff in Hz")
		preHighCut      = pflag.Float32("pre-high-cut", -1, "pre-filter high cutoff in Hz")
		lowShelfCut     = pflag.Float32("low-shelf-cut", -1, "low shelf cutoff in Hz")
		lowShelfGain    = pflag.Float32("low-shelf-gain", 1, "low shelf gain in dB")
		highShelfCut    = pflag.Float32("high-shelf-cut", -1, "high shelf cutoff in Hz")
		highShelfGain   = pflag.Float32("high-shelf-gain", 1, "high shelf gain in dB")
		blockSize       = pflag.Int("block", 0, "processing block size in frames (0 = config file value, else dsp.MaxBlockSize)")
		verbose         = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "vitaverbctl: -in and -out are required")
		pflag.Usage()
		os.Exit(2)
	}

	cfgFile, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	params := cfgFile.Params()

	if *mix >= 0 {
		params.Mix = *mix
	}
	if *size >= 0 {
		params.Size = *size
	}
	if *decay >= 0 {
		params.Decay = *decay
	}
	if *delay >= 0 {
		params.Delay = *delay
	}
	if *width >= -1 {
		params.Width = *width
	}
	if *chorusFreq >= 0 {
		params.ChorusFreqHz = *chorusFreq
	}
	if *chorusAmount >= 0 {
		params.ChorusAmount = *chorusAmount
	}
	if *preLowCut >= 0 {
		params.PreLowCutHz = *preLowCut
	}
	if *preHighCut >= 0 {
		params.PreHighCutHz = *preHighCut
	}
	if *lowShelfCut >= 0 {
		params.LowShelfCutHz = *lowShelfCut
	}
	if *lowShelfGain != 1 {
		params.LowShelfGainDB = *lowShelfGain
	}
	if *highShelfCut >= 0 {
		params.HighShelfCutHz = *highShelfCut
	}
	if *highShelfGain != 1 {
		params.HighShelfGainDB = *highShelfGain
	}
	params = params.Clamped()

	effectiveBlockSize := *blockSize
	if effectiveBlockSize <= 0 {
		effectiveBlockSize = cfgFile.BlockSizeOr(0)
	}
	if effectiveBlockSize <= 0 {
		effectiveBlockSize = dsp.MaxBlockSize
	}

	in, err := os.Open(*inPath)
	if err != nil {
		logger.Fatal("opening input", "path", *inPath, "err", err)
	}
	defer in.Close()

	left, right, sampleRate, err := wavio.ReadStereo(in)
	if err != nil {
		logger.Fatal("reading wav", "path", *inPath, "err", err)
	}
	logger.Debug("decoded input", "frames", len(left), "sample_rate", sampleRate)

	reverb := vitaverb.NewReverb()
	if err := reverb.TryInit(float32(sampleRate)); err != nil {
		logger.Fatal("initializing reverb", "err", err)
	}

	total := len(left)
	for processed := 0; processed < total; processed += effectiveBlockSize {
		end := processed + effectiveBlockSize
		if end > total {
			end = total
		}
		if err := reverb.TryProcess(left[processed:end], right[processed:end], params); err != nil {
			logger.Fatal("processing block", "err", err)
		}
	}
	logger.Debug("reverb applied", "tail_samples", reverb.TailSamples(params.Decay))

	out, err := os.Create(*outPath)
	if err != nil {
		logger.Fatal("creating output", "path", *outPath, "err", err)
	}
	defer out.Close()

	if err := wavio.WriteStereo(out, left, right, sampleRate); err != nil {
		logger.Fatal("writing wav", "path", *outPath, "err", err)
	}

	logger.Info("wrote output", "path", *outPath)
}
