// Manual smoke test against real hardware: opens the port, queries the
// device and recenters channel 0. Not part of the automated suite.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/peppercorn-robotics/gomaestro/onboard/maestro"
	"github.com/peppercorn-robotics/gomaestro/onboard/serbus"
)

func main() {
	port := flag.String("port", "/dev/ttyACM0", "serial port of the Maestro command interface")
	baud := flag.Int("baud", 9600, "baud rate")
	flag.Parse()

	bus, err := serbus.Open(*port, *baud, time.Second)
	if err != nil {
		panic(err)
	}

	ctrl := maestro.NewController(bus, 0)
	defer ctrl.Close()

	pos, err := ctrl.GetPosition(0)
	if err != nil {
		panic(err)
	}
	fmt.Printf("channel 0 at %d\n", pos)

	if err = ctrl.SetSpeed(0, 1000); err != nil {
		panic(err)
	}
	if err = ctrl.SetTarget(0, 6000); err != nil {
		panic(err)
	}

	moving, err := ctrl.GetMovingState()
	if err != nil {
		panic(err)
	}
	fmt.Printf("Success! moving state: %v\n", moving)
}
