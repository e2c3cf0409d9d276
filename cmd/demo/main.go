// Command demo drives a small traffic-light statechart through the new
// stack end to end: builder assembles the chart, a Driver runs it on a
// ticker, a diagnostics.Logger traces every step, and a DefaultVisualizer
// prints the chart's DOT representation each cycle.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/comalice/statechartx/builder"
	"github.com/comalice/statechartx/internal/core"
	"github.com/comalice/statechartx/internal/diagnostics"
	"github.com/comalice/statechartx/internal/primitives"
	"github.com/comalice/statechartx/internal/production"
	"github.com/comalice/statechartx/runtime"
)

func main() {
	chart, err := builder.Compound("traffic", "red",
		builder.Atomic("red").On("TIMER", "green"),
		builder.Atomic("green").On("TIMER", "yellow"),
		builder.Atomic("yellow").On("TIMER", "red"),
	).Build("traffic-light")
	if err != nil {
		panic(err)
	}

	log := diagnostics.NewConsole(zerolog.InfoLevel)

	in, err := core.NewInterpreter(chart)
	if err != nil {
		panic(err)
	}
	in.Bind(func(event primitives.Event) {
		log.EventConsumed(in.ID().String(), event.Name)
	})

	visualizer := &production.DefaultVisualizer{}

	driver := runtime.NewDriver(in,
		runtime.WithInbox(8),
		runtime.WithStepListener(func(step *core.MacroStep) {
			eventName := ""
			if step.Event != nil {
				eventName = step.Event.Name
			}
			for _, micro := range step.MicroSteps {
				if micro.Transition == nil {
					continue
				}
				log.TransitionProcessed(in.ID().String(), micro.Transition.Source, micro.Transition.Target, eventName)
			}
		}),
	)
	driver.Start()
	defer driver.Stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	cycles := 0
	for {
		select {
		case <-ticker.C:
			if err := driver.Send(primitives.NewEvent("TIMER", nil)); err != nil {
				fmt.Printf("send error: %v\n", err)
			}
			fmt.Printf("\n--- Cycle %d ---\n", cycles+1)
			fmt.Println("Current states:", driver.Configuration())
			fmt.Println("DOT:\n" + visualizer.ExportDOT(chart, driver.Configuration()))
			cycles++
			if cycles >= 12 {
				fmt.Println("Demo complete after 12 cycles.")
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
