package game

import (
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"snakinator/internal/sim"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = oto.FormatFloat32LE
)

// Per-cue gain. Ticks fire several times a second so the move blip is
// kept well under the rest.
var cueVolume = map[sim.Cue]float64{
	sim.CueMove:  0.07,
	sim.CueApple: 0.55,
	sim.CueHit:   0.05,
	sim.CueDeath: 0.4,
	sim.CueStart: 0.45,
}

const songVolume = 0.12

// maxVoices caps simultaneous cue players.
const maxVoices = 6

// Audio plays the simulator's cues and the background song. Every method is
// a no-op until the oto context reports ready.
type Audio struct {
	ctx   *oto.Context
	ready chan struct{}

	mu   sync.Mutex
	song oto.Player

	cues   map[sim.Cue][]byte
	voices int32
	muted  atomic.Bool
}

func NewAudio() (*Audio, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	a := &Audio{ctx: ctx, ready: ready, cues: make(map[sim.Cue][]byte)}
	for c := sim.CueMove; c <= sim.CueStart; c++ {
		a.cues[c] = generateCue(c)
	}
	return a, nil
}

// Attach plays every cue emitted on bus.
func (a *Audio) Attach(bus *sim.EventBus) {
	if a == nil {
		return
	}
	bus.SubscribeAll(func(e sim.Event) { a.Play(e.Cue) })
}

func (a *Audio) isReady() bool {
	if a == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// ToggleMute silences cues and the song.
func (a *Audio) ToggleMute() {
	if a == nil {
		return
	}
	m := !a.muted.Load()
	a.muted.Store(m)
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.song != nil {
		if m {
			a.song.SetVolume(0)
		} else {
			a.song.SetVolume(songVolume)
		}
	}
}

func (a *Audio) Muted() bool {
	return a != nil && a.muted.Load()
}

// Play fires a cue and forgets about it.
func (a *Audio) Play(c sim.Cue) {
	if !a.isReady() || a.muted.Load() {
		return
	}
	samples := a.cues[c]
	if len(samples) == 0 {
		return
	}
	if atomic.AddInt32(&a.voices, 1) > maxVoices {
		atomic.AddInt32(&a.voices, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&a.voices, -1)
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(cueVolume[c])
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// StartSong loops the background song. It waits for the device in the
// background so the caller never blocks.
func (a *Audio) StartSong() {
	if a == nil {
		return
	}
	go func() {
		<-a.ready
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.song != nil {
			a.song.Close()
		}
		player := a.ctx.NewPlayer(&songReader{seed: uint64(time.Now().UnixNano())})
		if a.muted.Load() {
			player.SetVolume(0)
		} else {
			player.SetVolume(songVolume)
		}
		a.song = player
		player.Play()
	}()
}

func (a *Audio) Close() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.song != nil {
		a.song.Close()
		a.song = nil
	}
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func generateCue(c sim.Cue) []byte {
	switch c {
	case sim.CueMove:
		return genMove()
	case sim.CueApple:
		return genApple()
	case sim.CueHit:
		return genHit()
	case sim.CueDeath:
		return genDeath()
	case sim.CueStart:
		return genStart()
	}
	return nil
}

// genMove: short soft tick.
func genMove() []byte {
	n := SampleRate * 40 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.0, 0.1)
		s := fm(t, 220-60*p, 1.0, 0.8) * env * 0.6
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genApple: snappy FM pop, ascending pitch with bell attack.
func genApple() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 480 + 720*p
		s := fm(t, freq, 2.0, 3.5*env) * env * 0.5
		s += math.Sin(2*math.Pi*freq*3*t) * env * 0.06
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHit: falling thump, one per shrink step.
func genHit() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 320 - 220*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.52
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.1
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDeath: descending minor chord with a noise crunch on the attack.
func genDeath() []byte {
	n := int(0.75 * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	seed := uint64(0xDEAD)
	for i := 0; i < n/10; i++ {
		mix[i] += lcg(&seed) * math.Exp(-float64(i)/float64(n/40)) * 0.3
	}
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genStart: ascending FM bell staircase.
func genStart() []byte {
	notes := []float64{440, 554.37, 659.25, 880}
	noteStep := int(0.07 * SampleRate)
	total := len(notes)*noteStep + int(0.2*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			mix[start+j] += fm(t, freq, 3.5, 5.5*env) * env * 0.28
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// ---- Song ---------------------------------------------------------------

// songReader synthesises an endless four-chord loop.
type songReader struct {
	t    float64
	seed uint64
}

var songChords = [][]float64{
	{220.0, 261.6, 329.6}, // Am
	{174.6, 220.0, 261.6}, // F
	{261.6, 329.6, 392.0}, // C
	{196.0, 246.9, 293.7}, // G
}

const (
	songTempo         = 1.8 // beats per second
	songBeatsPerChord = 4
)

func (m *songReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	beatLen := 1.0 / songTempo
	for i := 0; i < samples; i++ {
		m.t += 1.0 / SampleRate
		beat := int(m.t * songTempo)
		trig := math.Mod(m.t, beatLen)
		chord := songChords[(beat/songBeatsPerChord)%len(songChords)]

		s := 0.0
		for _, f := range chord {
			s += fm(m.t, f, 1.45, 0.6) * 0.05
		}
		bassEnv := math.Exp(-trig * 6)
		s += fm(m.t, chord[0]*0.5, 0.5, 1.1*bassEnv) * bassEnv * 0.3
		if beat%2 == 0 {
			s += kick(trig)
		}
		half := math.Mod(m.t, beatLen/2)
		s += lcg(&m.seed) * math.Exp(-half*45) * 0.04

		putStereoF32(p, i, softSat(s*0.8))
	}
	return samples * 8, nil
}

// kick returns a kick drum sample given time-since-trigger in seconds.
func kick(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	return softSat(body + click)
}
