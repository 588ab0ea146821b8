// Command listports prints the available MIDI input and output ports.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/leandrodaf/crim2s/internal/logger"
	"github.com/leandrodaf/crim2s/sdk/contracts"
	"github.com/leandrodaf/crim2s/sdk/midi"
	"github.com/urfave/cli/v3"
)

func main() {
	log := logger.NewZapLogger()
	defer log.Sync()

	cmd := &cli.Command{
		Name:  "listports",
		Usage: "list MIDI input and output ports",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := midi.NewMIDIClient(contracts.WithLogger(log), contracts.WithLogLevel(contracts.WarnLevel))
			if err != nil {
				return err
			}
			defer client.Stop()

			inputs, outputs, err := midi.Ports(client)
			if err != nil {
				log.Warn("Some ports could not be listed", log.Field().Error("error", err))
			}
			printPorts("Puertos MIDI de Entrada Disponibles:", "No se encontraron puertos MIDI de entrada.", inputs)
			fmt.Println()
			printPorts("Puertos MIDI de Salida Disponibles:", "No se encontraron puertos MIDI de salida.", outputs)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error("listports failed", log.Field().Error("error", err))
		log.Sync()
		os.Exit(1)
	}
}

func printPorts(title, empty string, devices []contracts.DeviceInfo) {
	if len(devices) == 0 {
		fmt.Println(empty)
		return
	}
	fmt.Println(title)
	for i, d := range devices {
		fmt.Printf("%d. %s\n", i+1, d.Name)
	}
}
