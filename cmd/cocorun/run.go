package main

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cocoemu/dragon64/internal/cpu"
	"github.com/cocoemu/dragon64/internal/hostui"
	"github.com/cocoemu/dragon64/internal/machine"
	"github.com/cocoemu/dragon64/internal/vdg"
	"github.com/spf13/cobra"
)

func runE(cmd *cobra.Command, args []string) error {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("read rom: %w", err)
	}
	var cart []byte
	if cartPath != "" {
		cart, err = os.ReadFile(cartPath)
		if err != nil {
			return fmt.Errorf("read cart: %w", err)
		}
	}

	h := hostui.NewHeadlessHost()
	m := machine.New(rom, cart, machine.Host{
		Display:        h.Display,
		Keyboard:       h.Keyboard,
		Joystick:       h.Joystick,
		Audio:          h.Audio,
		CassetteLoader: h,
		ResetButton:    h,
	})

	start := time.Now()
	for i := 0; i < ticks; i++ {
		if trace {
			text, _ := cpu.Disassemble(m.Mem, m.CPU.PC)
			fmt.Printf("PC=%04X %s\n", m.CPU.PC, text)
		}
		m.Tick()
	}
	dur := time.Since(start)

	fb := h.Display.Framebuffer()
	crc := crc32.ChecksumIEEE(fb)
	log.Printf("headless: ticks=%d elapsed=%s fb_crc32=%08x", ticks, dur.Truncate(time.Millisecond), crc)

	if pngOut != "" {
		if err := saveFramePNG(fb, pngOut); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", pngOut)
	}

	if expect != "" {
		want := strings.TrimPrefix(strings.ToLower(expect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

// saveFramePNG writes indexed as a flat 256-wide strip; the VDG's
// current resolution isn't exposed through the plain Framebuffer
// accessor, so height is derived from the buffer length instead of
// the actual mode geometry.
func saveFramePNG(indexed []byte, path string) error {
	const w = 256
	hgt := len(indexed) / w
	if hgt == 0 {
		hgt = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, hgt))
	for i, idx := range indexed {
		c := vdg.Palette[idx&0x0F]
		o := i * 4
		if o+3 >= len(img.Pix) {
			break
		}
		img.Pix[o+0] = c[2]
		img.Pix[o+1] = c[1]
		img.Pix[o+2] = c[0]
		img.Pix[o+3] = 0xFF
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
