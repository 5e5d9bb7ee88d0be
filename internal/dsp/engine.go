package dsp

import "math"

// Reverb is a 16-lane feedback-delay-network reverb: nested allpass
// diffusion, chorus-modulated delay-line reads, shelf damping, and a
// Catmull-Rom interpolated pre-delay output stage (spec.md §4.4).
//
// The zero value is not usable; construct with NewReverb, then call Init
// at least once before Process. Process and Reset never allocate.
type Reverb struct {
	stereoMemory *StereoMemory

	allpassMemories  [networkContainers][]float32
	feedbackMemories [networkContainers][4][]float32
	decays           [networkContainers]Vec4

	preLowFilter  OnePoleFilter
	preHighFilter OnePoleFilter

	lowShelfFilters  [networkContainers]OnePoleFilter
	highShelfFilters [networkContainers]OnePoleFilter

	preLowCoeff    float32
	preHighCoeff   float32
	lowShelfCoeff  float32
	highShelfCoeff float32
	lowShelfAmp    float32
	highShelfAmp   float32

	chorusPhase          float32
	chorusAmount         Vec4
	sampleDelay          float32
	sampleDelayIncrement float32
	dryAmp               float32
	wetAmp               float32

	widthCoeff float32

	writeIndex      int32
	maxFeedbackSize int32
	feedbackMask    int32
	feedbackMaskV   Vec4i
	allpassMask     int32
	allpassMaskV    Vec4i
	delayOffsetV    Vec4i
	allpassOffsets  [networkContainers]Vec4i
	delays          [networkContainers]Vec4

	prevPreLowCutHz     float32
	prevPreHighCutHz    float32
	prevLowShelfCutHz   float32
	prevHighShelfCutHz  float32
	prevSizeVal         float32
	prevDecayVal        float32
	prevChorusFreqHz    float32
	prevMixVal          float32
	prevLowShelfGainDB  float32
	prevHighShelfGainDB float32

	sizeMult            Vec4
	chorusIncrementReal float32
	chorusIncrementImag float32

	sampleRate      float32
	sampleRateRecip float32
	sampleRateRatio float32
	bufferScale     int32

	didInit bool
}

// NewReverb returns an uninitialized engine. It allocates only the
// constant-sized stereo output ring (sized for MaxSampleRate); all other
// buffers are allocated by Init once the sample rate is known (spec.md §6).
func NewReverb() *Reverb {
	return &Reverb{
		stereoMemory: NewStereoMemory(uint32(MaxSampleRate)),

		preLowCoeff:    0.1,
		preHighCoeff:   0.1,
		lowShelfCoeff:  0.1,
		highShelfCoeff: 0.1,

		sampleDelay: minDelay,
		widthCoeff:  0.5,

		prevSizeVal:         -1,
		prevDecayVal:        -1,
		prevChorusFreqHz:    -1,
		prevMixVal:          -1,
		prevLowShelfGainDB:  -1000,
		prevHighShelfGainDB: -1000,
	}
}

// Init (re)allocates all per-session buffers for the given sample rate and
// resets state. It may be called again to change sample rate.
func (r *Reverb) Init(sampleRate float32) {
	*r = *NewReverb()

	r.sampleRate = sampleRate
	r.sampleRateRecip = 1 / sampleRate
	r.sampleRateRatio = getSampleRateRatio(sampleRate)

	r.bufferScale = getBufferScale(sampleRate)
	bufferScaleV := SplatVec4i(r.bufferScale)

	r.maxFeedbackSize = r.bufferScale * (1 << (baseFeedbackBits + maxSizePower))
	r.feedbackMask = r.maxFeedbackSize - 1
	r.feedbackMaskV = SplatVec4i(r.feedbackMask)

	delayOffset := Vec4i{X: 0, Y: -1, Z: -2, W: -3}
	if r.bufferScale != 0 {
		delayOffset = delayOffset.AddScalar(4)
	}
	r.delayOffsetV = delayOffset

	for c := 0; c < networkContainers; c++ {
		for lane := 0; lane < 4; lane++ {
			r.feedbackMemories[c][lane] = make([]float32, r.maxFeedbackSize+extraLookupSample*4)
		}
	}

	maxAllpassSize := r.bufferScale * (1 << baseAllpassBits) * 4
	r.allpassMask = maxAllpassSize - 1
	r.allpassMaskV = SplatVec4i(r.allpassMask)

	four := SplatVec4i(4)
	for c := 0; c < networkContainers; c++ {
		r.allpassOffsets[c] = SwapStereo4i(allpassDelays[c].Mul(bufferScaleV).Mul(four).Add(r.delayOffsetV))
	}

	for c := 0; c < networkContainers; c++ {
		r.allpassMemories[c] = make([]float32, maxAllpassSize)
	}

	r.writeIndex &= r.feedbackMask
	r.didInit = true
}

// SwapStereo4i is the integer-lane analogue of SwapStereo, applied once to
// each container's allpass delay vector at Init.
func SwapStereo4i(a Vec4i) Vec4i {
	return Vec4i{X: a.Y, Y: a.X, Z: a.W, W: a.Z}
}

// TailSamples returns an upper-bound estimate, in samples, of the
// reverb's inaudible tail length for the given decay time.
func (r *Reverb) TailSamples(decaySeconds float32) uint32 {
	return uint32(math.Ceil(float64(decaySeconds) * 2 * float64(r.sampleRate)))
}

// Reset clears all filter, delay-line, and ring-buffer state without
// freeing any buffers or touching cached derived parameters.
func (r *Reverb) Reset() {
	r.preLowFilter.Reset()
	r.preHighFilter.Reset()

	for c := 0; c < networkContainers; c++ {
		r.lowShelfFilters[c].Reset()
		r.highShelfFilters[c].Reset()
	}

	for c := 0; c < networkContainers; c++ {
		for lane := 0; lane < 4; lane++ {
			clearFloat32(r.feedbackMemories[c][lane])
		}
		clearFloat32(r.allpassMemories[c])
	}

	r.stereoMemory.Clear()
}

func clearFloat32(s []float32) {
	for i := range s {
		s[i] = 0
	}
}

// Process mixes the dry signal in left/right with the reverb's wet signal,
// in place. left and right must have equal length. Process is re-blocked
// internally in chunks of at most MaxBlockSize frames, so parameter
// smoothing is well-defined regardless of the caller's buffer size.
//
// Process panics if Init has never been called, or if len(left) !=
// len(right) — both are host precondition violations, not recoverable
// runtime conditions (spec.md §7).
func (r *Reverb) Process(left, right []float32, params Params) {
	if !r.didInit {
		panic("dsp: Reverb.Process called before Init")
	}
	if len(left) != len(right) {
		panic("dsp: Reverb.Process requires left and right of equal length")
	}

	total := len(left)
	processed := 0
	for processed < total {
		frames := total - processed
		if frames > MaxBlockSize {
			frames = MaxBlockSize
		}
		r.processBlock(left[processed:processed+frames], right[processed:processed+frames], params)
		processed += frames
	}
}

func (r *Reverb) processBlock(left, right []float32, params Params) {
	frames := len(left)
	tickIncrement := 1 / float32(frames)

	// Refresh the guard region at the top of each block (spec.md invariant 2).
	for c := 0; c < networkContainers; c++ {
		for lane := 0; lane < 4; lane++ {
			buf := r.feedbackMemories[c][lane]
			buf[0] = buf[r.maxFeedbackSize]
			buf[r.maxFeedbackSize+1] = buf[1]
			buf[r.maxFeedbackSize+2] = buf[2]
			buf[r.maxFeedbackSize+3] = buf[3]
		}
	}

	currentPreLowCoeff, deltaPreLowCoeff := r.prepareFilterParam(params.PreLowCutHz, &r.prevPreLowCutHz, &r.preLowCoeff, tickIncrement)
	currentPreHighCoeff, deltaPreHighCoeff := r.prepareFilterParam(params.PreHighCutHz, &r.prevPreHighCutHz, &r.preHighCoeff, tickIncrement)
	currentLowShelfCoeff, deltaLowShelfCoeff := r.prepareFilterParam(params.LowShelfCutHz, &r.prevLowShelfCutHz, &r.lowShelfCoeff, tickIncrement)
	currentHighShelfCoeff, deltaHighShelfCoeff := r.prepareFilterParam(params.HighShelfCutHz, &r.prevHighShelfCutHz, &r.highShelfCoeff, tickIncrement)

	currentDryAmp := r.dryAmp
	currentWetAmp := r.wetAmp
	mixVal := clamp32(params.Mix, 0, 1)
	var deltaDryAmp, deltaWetAmp float32
	if r.prevMixVal != mixVal {
		r.prevMixVal = mixVal
		r.dryAmp = equalPowerFade(mixVal)
		r.wetAmp = equalPowerFadeInverse(mixVal)
		deltaDryAmp = (r.dryAmp - currentDryAmp) * tickIncrement
		deltaWetAmp = (r.wetAmp - currentWetAmp) * tickIncrement
	}

	lowShelfGainDB := clamp32(params.LowShelfGainDB, MinShelfGainDB, MaxShelfGainDB)
	highShelfGainDB := clamp32(params.HighShelfGainDB, MinShelfGainDB, MaxShelfGainDB)

	currentLowShelfAmp := r.lowShelfAmp
	currentHighShelfAmp := r.highShelfAmp
	var deltaLowShelfAmp, deltaHighShelfAmp float32
	if r.prevLowShelfGainDB != lowShelfGainDB {
		r.prevLowShelfGainDB = lowShelfGainDB
		r.lowShelfAmp = 1 - dbToAmplitude(lowShelfGainDB)
		deltaLowShelfAmp = (r.lowShelfAmp - currentLowShelfAmp) * tickIncrement
	}
	if r.prevHighShelfGainDB != highShelfGainDB {
		r.prevHighShelfGainDB = highShelfGainDB
		r.highShelfAmp = dbToAmplitude(highShelfGainDB)
		deltaHighShelfAmp = (r.highShelfAmp - currentHighShelfAmp) * tickIncrement
	}

	currentWidthCoeff := r.widthCoeff
	r.widthCoeff = (clamp32(params.Width, -1, 1) + 1) * 0.5
	deltaWidthCoeff := (r.widthCoeff - currentWidthCoeff) * tickIncrement

	currentDecays := r.decays
	sizeVal := clamp32(params.Size, 0, 1)
	decayVal := clamp32(params.Decay, MinDecaySeconds, MaxDecaySeconds)

	var deltaDecays [networkContainers]Vec4
	if r.prevSizeVal != sizeVal || r.prevDecayVal != decayVal {
		r.prevDecayVal = decayVal

		if r.prevSizeVal != sizeVal {
			r.prevSizeVal = sizeVal
			r.sizeMult = SplatVec4(float32(math.Pow(2, float64(sizeVal*sizePowerRange+minSizePower))))
		}

		decaySamples := decayVal * BaseSampleRate
		decayPeriod := r.sizeMult.Scale(1 / decaySamples)

		for c := 0; c < networkContainers; c++ {
			d := feedbackDelays[c].Mul(decayPeriod)
			r.decays[c] = Vec4{
				X: float32(math.Pow(t60Amplitude, float64(d.X))),
				Y: float32(math.Pow(t60Amplitude, float64(d.Y))),
				Z: float32(math.Pow(t60Amplitude, float64(d.Z))),
				W: float32(math.Pow(t60Amplitude, float64(d.W))),
			}
			r.delays[c] = r.sizeMult.Mul(feedbackDelays[c]).Scale(r.sampleRateRatio)
			deltaDecays[c] = r.decays[c].Sub(currentDecays[c]).Scale(tickIncrement)
		}
	}

	chorusFreq := clamp32(params.ChorusFreqHz, MinChorusFreqHz, MaxChorusFreqHz)
	chorusPhaseIncrement := chorusFreq * r.sampleRateRecip

	if r.prevChorusFreqHz != chorusFreq {
		r.prevChorusFreqHz = chorusFreq
		tau := 2 * math.Pi
		r.chorusIncrementReal = float32(math.Cos(float64(chorusPhaseIncrement) * tau))
		r.chorusIncrementImag = float32(math.Sin(float64(chorusPhaseIncrement) * tau))
	}

	phaseOffset := chorusPhaseOffset.Scale(networkOffset)
	containerPhase := phaseOffset.AddScalar(r.chorusPhase * float32(2*math.Pi))
	r.chorusPhase += float32(frames) * chorusPhaseIncrement
	r.chorusPhase -= float32(math.Floor(float64(r.chorusPhase)))

	currentChorusReal := Vec4{
		X: float32(math.Cos(float64(containerPhase.X))),
		Y: float32(math.Cos(float64(containerPhase.Y))),
		Z: float32(math.Cos(float64(containerPhase.Z))),
		W: float32(math.Cos(float64(containerPhase.W))),
	}
	currentChorusImaginary := Vec4{
		X: float32(math.Sin(float64(containerPhase.X))),
		Y: float32(math.Sin(float64(containerPhase.Y))),
		Z: float32(math.Sin(float64(containerPhase.Z))),
		W: float32(math.Sin(float64(containerPhase.W))),
	}

	currentChorusAmount := r.chorusAmount
	r.chorusAmount = SplatVec4(clamp32(params.ChorusAmount, 0, 1) * maxChorusDrift * r.sampleRateRatio)
	eightLanes := SplatVec4(8 * 4)
	r.chorusAmount = r.chorusAmount.Min(r.delays[0].Sub(eightLanes))
	r.chorusAmount = r.chorusAmount.Min(r.delays[1].Sub(eightLanes))
	r.chorusAmount = r.chorusAmount.Min(r.delays[2].Sub(eightLanes))
	r.chorusAmount = r.chorusAmount.Min(r.delays[3].Sub(eightLanes))
	deltaChorusAmount := r.chorusAmount.Sub(currentChorusAmount).Scale(tickIncrement)

	currentSampleDelay := r.sampleDelay
	currentDelayIncrement := r.sampleDelayIncrement
	endTarget := currentSampleDelay + currentDelayIncrement*float32(frames)
	delaySeconds := clamp32(params.Delay, MinDelaySeconds, MaxDelaySeconds)
	targetDelayRaw := clamp32(delaySeconds*r.sampleRate, minDelay, MaxSampleRate)
	targetDelay := currentSampleDelay + (targetDelayRaw-currentSampleDelay)*sampleDelayMultiplier
	makeupDelay := targetDelay - endTarget
	deltaDelayIncrement := makeupDelay / (0.5 * float32(frames) * float32(frames)) * sampleIncrementMultiplier

	for i := 0; i < frames; i++ {
		// Tick the chorus oscillator by complex rotation.
		currentChorusAmount = currentChorusAmount.Add(deltaChorusAmount)
		newReal := currentChorusReal.Scale(r.chorusIncrementReal).Sub(currentChorusImaginary.Scale(r.chorusIncrementImag))
		newImag := currentChorusImaginary.Scale(r.chorusIncrementReal).Add(currentChorusReal.Scale(r.chorusIncrementImag))
		currentChorusReal, currentChorusImaginary = newReal, newImag

		chorusTerm := currentChorusReal.Mul(currentChorusAmount)
		chorusTermImag := currentChorusImaginary.Mul(currentChorusAmount)
		feedbackOffsets := [networkContainers]Vec4{
			r.delays[0].Add(chorusTerm),
			r.delays[1].Sub(chorusTerm),
			r.delays[2].Add(chorusTermImag),
			r.delays[3].Sub(chorusTermImag),
		}

		var feedbackReads [networkContainers]Vec4
		for c := 0; c < networkContainers; c++ {
			feedbackReads[c] = r.readFeedbackInterpolated(c, feedbackOffsets[c])
		}

		l := left[i]
		rr := right[i]
		input := Vec4{X: l, Y: rr, Z: l, W: rr}

		filteredHigh := r.preHighFilter.Tick(input, currentPreHighCoeff)
		filteredInput := r.preLowFilter.Tick(input, currentPreLowCoeff).Sub(filteredHigh)
		scaledInput := filteredInput.Scale(0.25)

		var allpassReads [networkContainers]Vec4
		for c := 0; c < networkContainers; c++ {
			allpassReads[c] = r.readAllpass(c, r.allpassOffsets[c])
		}

		var allpassDelayInputs [networkContainers]Vec4
		for c := 0; c < networkContainers; c++ {
			allpassDelayInputs[c] = feedbackReads[c].Sub(allpassReads[c].Scale(allpassFeedback))
		}

		allpassWriteIndex := (r.writeIndex * 4) & r.allpassMask
		for c := 0; c < networkContainers; c++ {
			s := scaledInput.Add(allpassDelayInputs[c])
			mem := r.allpassMemories[c]
			mem[allpassWriteIndex] = s.X
			mem[allpassWriteIndex+1] = s.Y
			mem[allpassWriteIndex+2] = s.Z
			mem[allpassWriteIndex+3] = s.W
		}

		allpassOutputs := Matrix{Rows: [4]Vec4{
			allpassReads[0].Add(allpassDelayInputs[0].Scale(allpassFeedback)),
			allpassReads[1].Add(allpassDelayInputs[1].Scale(allpassFeedback)),
			allpassReads[2].Add(allpassDelayInputs[2].Scale(allpassFeedback)),
			allpassReads[3].Add(allpassDelayInputs[3].Scale(allpassFeedback)),
		}}

		totalRows := allpassOutputs.SumRows()
		otherFeedback := MulAdd(SplatVec4(totalRows.SumLanes()*0.25), totalRows, SplatVec4(-0.5))

		writes := Matrix{Rows: [4]Vec4{
			otherFeedback.Add(allpassOutputs.Rows[0]),
			otherFeedback.Add(allpassOutputs.Rows[1]),
			otherFeedback.Add(allpassOutputs.Rows[2]),
			otherFeedback.Add(allpassOutputs.Rows[3]),
		}}

		allpassOutputs.Transpose()
		adjacentFeedback := allpassOutputs.SumRows().Scale(-0.5)
		writes.Rows[0] = writes.Rows[0].AddScalar(adjacentFeedback.X)
		writes.Rows[1] = writes.Rows[1].AddScalar(adjacentFeedback.Y)
		writes.Rows[2] = writes.Rows[2].AddScalar(adjacentFeedback.Z)
		writes.Rows[3] = writes.Rows[3].AddScalar(adjacentFeedback.W)

		for c := 0; c < networkContainers; c++ {
			hf := r.highShelfFilters[c].Tick(writes.Rows[c], currentHighShelfCoeff)
			writes.Rows[c] = hf.Add(writes.Rows[c].Sub(hf).Scale(currentHighShelfAmp))
		}
		for c := 0; c < networkContainers; c++ {
			lf := r.lowShelfFilters[c].Tick(writes.Rows[c], currentLowShelfCoeff)
			writes.Rows[c] = writes.Rows[c].Sub(lf.Scale(currentLowShelfAmp))
		}

		for c := 0; c < networkContainers; c++ {
			currentDecays[c] = currentDecays[c].Add(deltaDecays[c])
		}

		stores := Matrix{Rows: [4]Vec4{
			currentDecays[0].Mul(writes.Rows[0]),
			currentDecays[1].Mul(writes.Rows[1]),
			currentDecays[2].Mul(writes.Rows[2]),
			currentDecays[3].Mul(writes.Rows[3]),
		}}

		feedbackWriteIndex := r.writeIndex + extraLookupSample
		for c := 0; c < networkContainers; c++ {
			v := stores.Rows[c]
			r.feedbackMemories[c][0][feedbackWriteIndex] = v.X
			r.feedbackMemories[c][1][feedbackWriteIndex] = v.Y
			r.feedbackMemories[c][2][feedbackWriteIndex] = v.Z
			r.feedbackMemories[c][3][feedbackWriteIndex] = v.W
		}

		totalAllpass := stores.SumRows()
		otherFeedbackAllpass := MulAdd(SplatVec4(totalAllpass.SumLanes()*0.25), totalAllpass, SplatVec4(-0.5))

		feedForwardVals := [networkContainers]Vec4{
			otherFeedbackAllpass.Add(stores.Rows[0]),
			otherFeedbackAllpass.Add(stores.Rows[1]),
			otherFeedbackAllpass.Add(stores.Rows[2]),
			otherFeedbackAllpass.Add(stores.Rows[3]),
		}

		stores.Transpose()
		adjacentFeedbackAllpass := stores.SumRows().Scale(-0.5)
		feedForwardVals[0] = feedForwardVals[0].AddScalar(adjacentFeedbackAllpass.X)
		feedForwardVals[1] = feedForwardVals[1].AddScalar(adjacentFeedbackAllpass.Y)
		feedForwardVals[2] = feedForwardVals[2].AddScalar(adjacentFeedbackAllpass.Z)
		feedForwardVals[3] = feedForwardVals[3].AddScalar(adjacentFeedbackAllpass.W)

		total := writes.SumRows()
		feedForwardSum := feedForwardVals[0].Mul(currentDecays[0]).
			Add(feedForwardVals[1].Mul(currentDecays[1])).
			Add(feedForwardVals[2].Mul(currentDecays[2])).
			Add(feedForwardVals[3].Mul(currentDecays[3]))
		total = total.Add(feedForwardSum.Scale(feedForwardScale))

		pushed := total.Add(SwapVoices(total))
		r.stereoMemory.Push(pushed.X, pushed.Y)

		wetL, wetR := r.stereoMemory.GetInterpolated(currentSampleDelay)

		mid := (wetL + wetR) * 0.5
		side := (wetR - wetL) * currentWidthCoeff
		wetLeftOut := mid - side
		wetRightOut := mid + side

		left[i] = currentWetAmp*wetLeftOut + currentDryAmp*l
		right[i] = currentWetAmp*wetRightOut + currentDryAmp*rr

		r.writeIndex = (r.writeIndex + 1) & r.feedbackMask

		currentWidthCoeff += deltaWidthCoeff

		currentDelayIncrement += deltaDelayIncrement
		currentSampleDelay += currentDelayIncrement
		currentSampleDelay = clamp32(currentSampleDelay, minDelay, MaxSampleRate)

		currentDryAmp += deltaDryAmp
		currentWetAmp += deltaWetAmp
		currentLowShelfAmp += deltaLowShelfAmp
		currentHighShelfAmp += deltaHighShelfAmp

		currentPreLowCoeff += deltaPreLowCoeff
		currentPreHighCoeff += deltaPreHighCoeff
		currentLowShelfCoeff += deltaLowShelfCoeff
		currentHighShelfCoeff += deltaHighShelfCoeff
	}

	r.sampleDelayIncrement = currentDelayIncrement
	r.sampleDelay = currentSampleDelay
}

// prepareFilterParam recomputes a one-pole cutoff coefficient only when
// the requested cutoff actually changed since the last block, returning
// the coefficient to start the block at and its per-sample delta.
func (r *Reverb) prepareFilterParam(newCut float32, prevCut *float32, coeff *float32, tickIncrement float32) (float32, float32) {
	currCoeff := *coeff
	newCut = clamp32(newCut, MinCutoffHz, MaxCutoffHz)

	if *prevCut == newCut {
		return currCoeff, 0
	}
	*prevCut = newCut
	*coeff = OnePoleCoeff(newCut, r.sampleRateRecip)
	return currCoeff, (*coeff - currCoeff) * tickIncrement
}

// readFeedbackInterpolated reads a fractionally-interpolated sample from
// container c's four feedback delay lines using the cubic polynomial
// kernel (spec.md §4.4 steps 2-3).
func (r *Reverb) readFeedbackInterpolated(c int, offset Vec4) Vec4 {
	writeOffset := SplatVec4(float32(r.writeIndex)).Sub(offset)
	flooredOffset := writeOffset.FloorUnchecked()
	flooredOffsetI := flooredOffset.TruncToVec4i()

	t := writeOffset.Sub(flooredOffset)
	kernel := PolynomialInterpolationMatrix(t)

	indices := flooredOffsetI.And(r.feedbackMaskV)
	memories := &r.feedbackMemories[c]

	values := Matrix{Rows: [4]Vec4{
		readVec4At(memories[0], indices.X+extraLookupSample),
		readVec4At(memories[1], indices.Y+extraLookupSample),
		readVec4At(memories[2], indices.Z+extraLookupSample),
		readVec4At(memories[3], indices.W+extraLookupSample),
	}}
	values.Transpose()

	return kernel.MultiplyAndSumRows(values)
}

func readVec4At(buf []float32, idx int32) Vec4 {
	return Vec4{X: buf[idx], Y: buf[idx+1], Z: buf[idx+2], W: buf[idx+3]}
}

// readAllpass reads the current 4-wide state of container c's allpass
// memory at the given swizzled offset.
func (r *Reverb) readAllpass(c int, offset Vec4i) Vec4 {
	indices := SplatVec4i(r.writeIndex * 4).Sub(offset).And(r.allpassMaskV)
	mem := r.allpassMemories[c]
	return Vec4{
		X: mem[indices.X],
		Y: mem[indices.Y],
		Z: mem[indices.Z],
		W: mem[indices.W],
	}
}
