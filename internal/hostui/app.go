// Package hostui provides the windowed host implementation: an
// ebiten.Game wiring internal/machine.Machine to a real window,
// keyboard, joystick, and audio output.
package hostui

import (
	"io"
	"time"

	"github.com/cocoemu/dragon64/internal/cassette"
	"github.com/cocoemu/dragon64/internal/machine"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ticksPerUpdate is how many Machine.Tick calls run per ebiten Update,
// pacing emulated CPU throughput against the host's ~60Hz callback rate.
const ticksPerUpdate = 14000

// App is the windowed host: an ebiten.Game driving a Machine and
// satisfying every interface internal/machine.Host requires.
type App struct {
	cfg Config
	m   *machine.Machine

	disp  *display
	kbd   keyboard
	joy   joystick
	audio *dacStream

	audioCtx    *audio.Context
	audioPlayer *audio.Player

	cassette *cassette.Tape
}

// NewApp builds a windowed host for romImage (with an optional cartImage
// overlay) and sizes the window per cfg.
func NewApp(cfg Config, romImage, cartImage []byte) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(256*cfg.Scale, 192*cfg.Scale)

	a := &App{cfg: cfg, disp: &display{}, audio: &dacStream{}}
	a.m = machine.New(romImage, cartImage, machine.Host{
		Display:        a.disp,
		Keyboard:       &a.kbd,
		Joystick:       a.joy,
		Audio:          a.audio,
		CassetteLoader: a,
		ResetButton:    a,
	})

	a.audioCtx = audio.NewContext(22050)
	return a
}

// Mount implements host.CassetteLoader by handing back whatever tape was
// attached via LoadCassette, consumed once by PIA1 on motor-on.
func (a *App) Mount() (*cassette.Tape, bool) {
	if a.cassette == nil {
		return nil, false
	}
	return a.cassette, true
}

// LoadCassette attaches a tape image for the next cassette motor-on.
func (a *App) LoadCassette(r io.ReadSeeker) { a.cassette = cassette.New(r) }

// Pressed implements host.ResetButton, tracking the R key.
func (a *App) Pressed() bool { return ebiten.IsKeyPressed(ebiten.KeyR) }

// Run starts the ebiten game loop.
func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if a.audioPlayer == nil {
		if p, err := a.audioCtx.NewPlayer(a.audio); err == nil {
			a.audioPlayer = p
			a.audioPlayer.SetBufferSize(30 * time.Millisecond)
			a.audioPlayer.Play()
		}
	}

	a.kbd.Scan()

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	for i := 0; i < ticksPerUpdate; i++ {
		a.m.Tick()
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	tex := a.disp.texture()
	if tex == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	sx := float64(screen.Bounds().Dx()) / float64(tex.Bounds().Dx())
	sy := float64(screen.Bounds().Dy()) / float64(tex.Bounds().Dy())
	op.GeoM.Scale(sx, sy)
	screen.DrawImage(tex, op)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.disp.w == 0 || a.disp.h == 0 {
		return 256, 192
	}
	return a.disp.w, a.disp.h
}
