// pulse-monitor streams the firmware's serial console to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.bug.st/serial"
)

func main() {
	var portName string
	var baud int
	flag.StringVar(&portName, "port", os.Getenv("QUADPULSE_PORT"), "serial port of the device console")
	flag.IntVar(&baud, "baud", 115200, "baud rate")
	flag.Parse()

	if portName == "" {
		ports, err := serial.GetPortsList()
		if err != nil {
			panic(err)
		}
		fmt.Fprintln(os.Stderr, "no -port given; available ports:")
		for _, p := range ports {
			fmt.Fprintln(os.Stderr, " ", p)
		}
		os.Exit(2)
	}

	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		panic(err)
	}
	defer port.Close()

	_, err = io.Copy(os.Stdout, port)
	if err != nil {
		panic(err)
	}
}
