package game

import (
	"fmt"

	"snakinator/internal/sim"
)

// RenderHUD draws the menu title or the in-game score on top of the scene.
func RenderHUD(r *Renderer, snap *sim.Snapshot, muted bool, fbW, fbH int, now float64) {
	white := RGB{R: 255, G: 255, B: 255}

	switch snap.Phase {
	case sim.PhaseMenu:
		title := WindowTitle
		titleScale := float32(fbW) / 120
		tx := fbW/2 - TextWidth(title, titleScale)/2
		ty := fbH/3 - int(float32(GlyphH)*titleScale)/2
		// Dark copy first, offset by a pixel of the glyph grid, for a drop shadow.
		off := int(titleScale / 2)
		r.DrawWavyString(title, tx+off, ty+off, titleScale, Palette.TitleDark, now)
		r.DrawWavyString(title, tx, ty, titleScale, Palette.TitleLight, now)

		msg := "PRESS ANY KEY"
		msgScale := titleScale / 3
		if int(now*2)%2 == 0 {
			r.DrawString(msg, fbW/2-TextWidth(msg, msgScale)/2, fbH/2+fbH/8, msgScale, white)
		}

		hint := "WASD MOVE  E CLIMB  ESC QUIT"
		if len(snap.Snakes) > 1 {
			hint = "P1 WASD E  P2 IJKL O  ESC QUIT"
		}
		hintScale := msgScale / 2
		r.DrawString(hint, fbW/2-TextWidth(hint, hintScale)/2, fbH-fbH/8, hintScale, Palette.TitleDark)

	case sim.PhasePlaying, sim.PhaseEnding:
		s := float32(fbH) / 160
		score := fmt.Sprintf("%d", snap.Score)
		r.DrawString(score, fbW/2-TextWidth(score, s)/2, int(s*4), s, Palette.Score)

		if len(snap.Snakes) > 1 {
			small := s * 0.6
			for i, sv := range snap.Snakes {
				label := fmt.Sprintf("P%d %d", sv.ID+1, len(sv.Body))
				col := Palette.Snakes[sv.ID%len(Palette.Snakes)]
				x := int(small * 4)
				if i%2 == 1 {
					x = fbW - TextWidth(label, small) - int(small*4)
				}
				r.DrawString(label, x, int(small*4), small, col)
			}
		}
	}

	if muted {
		s := float32(fbH) / 320
		r.DrawString("MUTE", int(s*4), fbH-int(s*(GlyphH+4)), s, white)
	}

	r.FlushHUD(fbW, fbH)
}
