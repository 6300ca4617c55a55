//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"kestrel/internal/buildinfo"
	"kestrel/kernel"
	"kestrel/kernel/pckbd"
)

// RunWindow boots the system in a desktop window that shows the framebuffer
// and turns key presses into keyboard interrupts. It blocks until the window
// closes, ctx is done, or the scripted input has been consumed.
func RunWindow(ctx context.Context, boot func(HAL), cfg HostConfig) error {
	h := newConfiguredHostHAL(cfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	var runErr error
	go func() {
		defer close(done)
		runErr = runHost(ctx, h, boot, cfg)
	}()

	g := &hostGame{h: h, done: done}
	ebiten.SetWindowTitle("kestrel (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)

	cancel()
	<-done
	if err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

type hostGame struct {
	h    *hostHAL
	done <-chan struct{}

	fbImg   *ebiten.Image
	scratch []byte
	gen     uint64
	keys    []ebiten.Key
}

func (g *hostGame) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	g.injectKeys(g.keys, pckbd.Pressed)
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	g.injectKeys(g.keys, pckbd.Released)
	return nil
}

func (g *hostGame) injectKeys(keys []ebiten.Key, state pckbd.KeyState) {
	for _, k := range keys {
		code, ok := ebitenKeys[k]
		if !ok {
			continue
		}
		if err := g.h.kbd.injectKey(pckbd.KeyEvent{Code: code, State: state}); err != nil {
			kernel.Logger().Debug().Err(err).Stringer("key", k).Msg("key not injected")
		}
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.scratch = make([]byte, fb.width*fb.height*4)
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.gen = ^uint64(0)
	}
	if gen := fb.gen.Load(); gen != g.gen {
		g.gen = fb.snapshotRGBA(g.scratch)
		g.fbImg.WritePixels(g.scratch)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}

var ebitenKeys = map[ebiten.Key]pckbd.KeyCode{
	ebiten.KeyEscape:         pckbd.KeyEscape,
	ebiten.KeyF1:             pckbd.KeyF1,
	ebiten.KeyF2:             pckbd.KeyF2,
	ebiten.KeyF3:             pckbd.KeyF3,
	ebiten.KeyF4:             pckbd.KeyF4,
	ebiten.KeyF5:             pckbd.KeyF5,
	ebiten.KeyF6:             pckbd.KeyF6,
	ebiten.KeyF7:             pckbd.KeyF7,
	ebiten.KeyF8:             pckbd.KeyF8,
	ebiten.KeyF9:             pckbd.KeyF9,
	ebiten.KeyF10:            pckbd.KeyF10,
	ebiten.KeyF11:            pckbd.KeyF11,
	ebiten.KeyF12:            pckbd.KeyF12,
	ebiten.KeyPrintScreen:    pckbd.KeyPrintScreen,
	ebiten.KeyScrollLock:     pckbd.KeyScrollLock,
	ebiten.KeyBackquote:      pckbd.KeyBacktick,
	ebiten.KeyDigit1:         pckbd.Key1,
	ebiten.KeyDigit2:         pckbd.Key2,
	ebiten.KeyDigit3:         pckbd.Key3,
	ebiten.KeyDigit4:         pckbd.Key4,
	ebiten.KeyDigit5:         pckbd.Key5,
	ebiten.KeyDigit6:         pckbd.Key6,
	ebiten.KeyDigit7:         pckbd.Key7,
	ebiten.KeyDigit8:         pckbd.Key8,
	ebiten.KeyDigit9:         pckbd.Key9,
	ebiten.KeyDigit0:         pckbd.Key0,
	ebiten.KeyMinus:          pckbd.KeyMinus,
	ebiten.KeyEqual:          pckbd.KeyEquals,
	ebiten.KeyBackspace:      pckbd.KeyBackspace,
	ebiten.KeyTab:            pckbd.KeyTab,
	ebiten.KeyQ:              pckbd.KeyQ,
	ebiten.KeyW:              pckbd.KeyW,
	ebiten.KeyE:              pckbd.KeyE,
	ebiten.KeyR:              pckbd.KeyR,
	ebiten.KeyT:              pckbd.KeyT,
	ebiten.KeyY:              pckbd.KeyY,
	ebiten.KeyU:              pckbd.KeyU,
	ebiten.KeyI:              pckbd.KeyI,
	ebiten.KeyO:              pckbd.KeyO,
	ebiten.KeyP:              pckbd.KeyP,
	ebiten.KeyBracketLeft:    pckbd.KeyLeftBracket,
	ebiten.KeyBracketRight:   pckbd.KeyRightBracket,
	ebiten.KeyBackslash:      pckbd.KeyBackslash,
	ebiten.KeyCapsLock:       pckbd.KeyCapsLock,
	ebiten.KeyA:              pckbd.KeyA,
	ebiten.KeyS:              pckbd.KeyS,
	ebiten.KeyD:              pckbd.KeyD,
	ebiten.KeyF:              pckbd.KeyF,
	ebiten.KeyG:              pckbd.KeyG,
	ebiten.KeyH:              pckbd.KeyH,
	ebiten.KeyJ:              pckbd.KeyJ,
	ebiten.KeyK:              pckbd.KeyK,
	ebiten.KeyL:              pckbd.KeyL,
	ebiten.KeySemicolon:      pckbd.KeySemicolon,
	ebiten.KeyQuote:          pckbd.KeyQuote,
	ebiten.KeyEnter:          pckbd.KeyEnter,
	ebiten.KeyShiftLeft:      pckbd.KeyLeftShift,
	ebiten.KeyIntlBackslash:  pckbd.KeyNonUSBackslash,
	ebiten.KeyZ:              pckbd.KeyZ,
	ebiten.KeyX:              pckbd.KeyX,
	ebiten.KeyC:              pckbd.KeyC,
	ebiten.KeyV:              pckbd.KeyV,
	ebiten.KeyB:              pckbd.KeyB,
	ebiten.KeyN:              pckbd.KeyN,
	ebiten.KeyM:              pckbd.KeyM,
	ebiten.KeyComma:          pckbd.KeyComma,
	ebiten.KeyPeriod:         pckbd.KeyPeriod,
	ebiten.KeySlash:          pckbd.KeySlash,
	ebiten.KeyShiftRight:     pckbd.KeyRightShift,
	ebiten.KeyControlLeft:    pckbd.KeyLeftCtrl,
	ebiten.KeyMetaLeft:       pckbd.KeyLeftMeta,
	ebiten.KeyAltLeft:        pckbd.KeyLeftAlt,
	ebiten.KeySpace:          pckbd.KeySpace,
	ebiten.KeyAltRight:       pckbd.KeyRightAlt,
	ebiten.KeyMetaRight:      pckbd.KeyRightMeta,
	ebiten.KeyContextMenu:    pckbd.KeyMenu,
	ebiten.KeyControlRight:   pckbd.KeyRightCtrl,
	ebiten.KeyInsert:         pckbd.KeyInsert,
	ebiten.KeyHome:           pckbd.KeyHome,
	ebiten.KeyPageUp:         pckbd.KeyPageUp,
	ebiten.KeyDelete:         pckbd.KeyDelete,
	ebiten.KeyEnd:            pckbd.KeyEnd,
	ebiten.KeyPageDown:       pckbd.KeyPageDown,
	ebiten.KeyArrowUp:        pckbd.KeyUp,
	ebiten.KeyArrowLeft:      pckbd.KeyLeft,
	ebiten.KeyArrowDown:      pckbd.KeyDown,
	ebiten.KeyArrowRight:     pckbd.KeyRight,
	ebiten.KeyNumLock:        pckbd.KeyNumLock,
	ebiten.KeyNumpadDivide:   pckbd.KeyPadDivide,
	ebiten.KeyNumpadMultiply: pckbd.KeyPadMultiply,
	ebiten.KeyNumpadSubtract: pckbd.KeyPadMinus,
	ebiten.KeyNumpad7:        pckbd.KeyPad7,
	ebiten.KeyNumpad8:        pckbd.KeyPad8,
	ebiten.KeyNumpad9:        pckbd.KeyPad9,
	ebiten.KeyNumpadAdd:      pckbd.KeyPadPlus,
	ebiten.KeyNumpad4:        pckbd.KeyPad4,
	ebiten.KeyNumpad5:        pckbd.KeyPad5,
	ebiten.KeyNumpad6:        pckbd.KeyPad6,
	ebiten.KeyNumpad1:        pckbd.KeyPad1,
	ebiten.KeyNumpad2:        pckbd.KeyPad2,
	ebiten.KeyNumpad3:        pckbd.KeyPad3,
	ebiten.KeyNumpad0:        pckbd.KeyPad0,
	ebiten.KeyNumpadDecimal:  pckbd.KeyPadPeriod,
	ebiten.KeyNumpadEnter:    pckbd.KeyPadEnter,
}
