// BrokerGPT is a CRM and assistant for commercial insurance brokers.
package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kart-io/brokergpt/internal/brokergpt"
	"github.com/kart-io/brokergpt/pkg/app"
)

func main() {
	opts := brokergpt.NewOptions()

	a := app.NewApp(
		app.WithName("brokergpt"),
		app.WithDescription("BrokerGPT API server: client and carrier management, policy tracking, and an AI assistant for commercial insurance brokers."),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return brokergpt.Run(opts)
		}),
	)
	a.Run()
}
