package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/caarlos0/env/v6"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/peppercorn-robotics/gomaestro/onboard"
	"github.com/peppercorn-robotics/gomaestro/onboard/maestro"
	"github.com/peppercorn-robotics/gomaestro/onboard/serbus"
)

type EnvConfig struct {
	CONFIG      string        `env:"CONFIG" envDefault:""`
	DEBUG       bool          `env:"DEBUG" envDefault:"0"`
	READTIMEOUT time.Duration `env:"READ_TIMEOUT" envDefault:"500ms"`
}

var ENV *EnvConfig

func init() {
	ENV = new(EnvConfig)
	if err := env.Parse(ENV); err != nil {
		panic(err)
	}
}

func main() {
	// process flags
	simulated := flag.Bool("sim", false, "Run against a simulated device instead of real hardware")
	listen := flag.String("port", "0.0.0.0:8080", "Specify the ip:port to listen on")
	configPath := flag.String("config", ENV.CONFIG, "Path to the robot yaml config")
	flag.Parse()

	// Setup the robot so everything works as expected later
	config := onboard.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = onboard.LoadConfig(*configPath)
		if err != nil {
			panic(fmt.Sprintf("Unable to load config: %v", err))
		}
	}

	var bus serbus.Bus
	if *simulated {
		println("Running against a simulated device")
		bus = maestro.NewSimulator(config.Device)
	} else {
		var err error
		bus, err = serbus.Open(config.Port, config.Baud, ENV.READTIMEOUT)
		if err != nil {
			panic(fmt.Sprintf("Unable to open serial port %s: %v", config.Port, err))
		}
	}

	robot, err := onboard.NewRobot(maestro.NewController(bus, config.Device), config)
	if err != nil {
		panic(fmt.Sprintf("Unable to initialize robot: %v", err))
	}
	defer robot.Close()

	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Recoverer) // make sure this is last

	//---
	// Create a local shell
	//---
	{
		shell := ishell.New()
		shell.Println("Robot development shell")
		shell.ShowPrompt(true)

		addGesture := func(name, help string, gesture onboard.Gesture) {
			shell.AddCmd(&ishell.Cmd{
				Name: name,
				Help: help,
				Func: func(c *ishell.Context) {
					if err := robot.Perform(gesture); err != nil {
						c.Err(err)
						return
					}
					c.Println(gesture.String())
				},
			})
		}

		addGesture("forward", "drive forward; repeat forward2/forward3 for faster tiers", onboard.GestureForward)
		addGesture("forward2", "drive forward, middle tier", onboard.GestureForwardFaster)
		addGesture("forward3", "drive forward, fastest tier", onboard.GestureForwardFastest)
		addGesture("back", "drive backward", onboard.GestureBackward)
		addGesture("back2", "drive backward, middle tier", onboard.GestureBackwardFaster)
		addGesture("back3", "drive backward, fastest tier", onboard.GestureBackwardFastest)
		addGesture("stop", "stop the wheels", onboard.GestureStop)
		addGesture("left", "turn left", onboard.GestureTurnLeft)
		addGesture("right", "turn right", onboard.GestureTurnRight)
		addGesture("panl", "rotate head left", onboard.GestureRotateHeadLeft)
		addGesture("panr", "rotate head right", onboard.GestureRotateHeadRight)
		addGesture("tiltu", "tilt head up", onboard.GestureTiltHeadUp)
		addGesture("tiltd", "tilt head down", onboard.GestureTiltHeadDown)
		addGesture("twistl", "twist torso left", onboard.GestureTwistLeft)
		addGesture("twistc", "center the torso", onboard.GestureTwistCenter)
		addGesture("twistr", "twist torso right", onboard.GestureTwistRight)
		addGesture("reset", "recenter every axis", onboard.GestureResetAll)

		axisNames := func([]string) []string {
			return robot.AxisNames()
		}

		shell.AddCmd(&ishell.Cmd{
			Name:      "pos",
			Completer: axisNames,
			Help:      "pos <axis>",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(fmt.Errorf("usage: pos <axis>"))
					return
				}
				pos, err := robot.Position(c.Args[0])
				if err != nil {
					c.Err(err)
					return
				}
				c.Printf("%s: %d\n", c.Args[0], pos)
			},
		})

		shell.AddCmd(&ishell.Cmd{
			Name: "moving",
			Help: "Reads the aggregate moving state from the device",
			Func: func(c *ishell.Context) {
				moving, err := robot.Moving()
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(moving)
			},
		})

		// Start an instance of the shell so it can be controlled from the CLI
		go shell.Start()
	}

	//---
	// Build the API routes
	//---
	r.Mount("/api", apiRouter(robot))

	// Add websocket routes
	r.Route("/ws", func(r chi.Router) {
		r.Get("/positions", PositionsHandler(robot))
	})

	fmt.Println("Listening on port", *listen)
	if err := http.ListenAndServe(*listen, r); err != nil {
		log.Fatal(err)
	}
}
