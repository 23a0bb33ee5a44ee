//go:build js && wasm

// Command slipper-wasm binds a rendered slipper page to the guess controller
// and the c12 clock. Build with GOOS=js GOARCH=wasm.
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"
	"time"

	"github.com/illarion/slipper/internal/clock"
	"github.com/illarion/slipper/internal/guess"
	"github.com/illarion/slipper/internal/logging"
	"github.com/illarion/slipper/internal/page"
)

// element adapts a DOM element to the controller and clock interfaces
type element struct {
	v js.Value
}

func (e element) Value() string { return e.v.Get("value").String() }

func (e element) SetText(text string) { e.v.Set("innerText", text) }

func main() {
	logger := logging.NewWriter(os.Stderr, slog.LevelWarn)
	doc := js.Global().Get("document")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var funcs []js.Func
	defer func() {
		for _, fn := range funcs {
			fn.Release()
		}
	}()

	ctrl, onInput := bindController(doc, logger)
	if ctrl != nil {
		defer ctrl.Close()
		funcs = append(funcs, onInput)
	}

	reg := clock.NewRegistry()
	nodes := doc.Call("getElementsByClassName", page.ClockClass)
	for i := 0; i < nodes.Length(); i++ {
		reg.Add(element{nodes.Index(i)})
	}
	if reg.Len() > 0 {
		reg.Render(time.Now())
		go reg.Run(ctx, time.Now)
	}

	life := page.NewLifecycle()
	onHide := js.FuncOf(func(this js.Value, args []js.Value) any {
		persisted := len(args) > 0 && args[0].Get("persisted").Truthy()
		life.PageHide(persisted)
		return nil
	})
	funcs = append(funcs, onHide)
	js.Global().Call("addEventListener", "pagehide", onHide)

	<-life.Unloaded()
}

// bindController wires the three page elements to a guess controller. A page
// without them only runs the clock.
func bindController(doc js.Value, logger *slog.Logger) (*guess.Controller, js.Func) {
	src := doc.Call("getElementById", page.CipherTextID)
	input := doc.Call("getElementById", page.InputID)
	out := doc.Call("getElementById", page.OutputID)
	if src.IsNull() || input.IsNull() || out.IsNull() {
		return nil, js.Func{}
	}

	ctrl, err := guess.New(element{src}, element{out}, guess.WithLogger(logger))
	if err != nil {
		logger.Error("page has no usable ciphertext", slog.Any("error", err))
		return nil, js.Func{}
	}

	onInput := js.FuncOf(func(this js.Value, args []js.Value) any {
		ctrl.Input(input.Get("value").String())
		return nil
	})
	input.Call("addEventListener", "input", onInput)
	return ctrl, onInput
}
