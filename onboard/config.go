package onboard

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// Logical axis names. Gestures address axes by name; the config maps each
// name onto a controller channel so nothing in the gesture layer hardcodes
// channel numbers.
const (
	AxisTwist = "twist" // torso rotation
	AxisDrive = "drive" // wheels forward/backward
	AxisSteer = "steer" // wheels left/right
	AxisPan   = "pan"   // head rotation
	AxisTilt  = "tilt"  // head tilt
)

// requiredAxes is the set every gesture-complete config must map.
var requiredAxes = []string{AxisTwist, AxisDrive, AxisSteer, AxisPan, AxisTilt}

// AxisConfig binds a logical axis to a channel with its safe travel range
// and default slew speed. Zero bounds leave travel unrestricted.
type AxisConfig struct {
	Channel int `yaml:"channel"`
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Speed   int `yaml:"speed"`
}

// Config describes the serial link and the axis map for one robot.
type Config struct {
	Port   string                `yaml:"port"`
	Baud   int                   `yaml:"baud"`
	Device byte                  `yaml:"device"`
	Axes   map[string]AxisConfig `yaml:"axes"`
}

// DefaultConfig reproduces the robot's stock wiring: torso on channel 0,
// wheels on 1 and 2, head on 3 and 4.
func DefaultConfig() Config {
	return Config{
		Port: "/dev/ttyACM0",
		Baud: 9600,
		Axes: map[string]AxisConfig{
			AxisTwist: {Channel: 0, Min: 3000, Max: 9000, Speed: 1000},
			AxisDrive: {Channel: 1, Min: 5000, Max: 7000, Speed: 1000},
			AxisSteer: {Channel: 2, Min: 5000, Max: 7000, Speed: 1000},
			AxisPan:   {Channel: 3, Min: 4000, Max: 8000, Speed: 1000},
			AxisTilt:  {Channel: 4, Min: 4000, Max: 8000, Speed: 1000},
		},
	}
}

// LoadConfig reads a yaml config file. Port, baud and any missing axes are
// filled from the defaults, so a partial file only has to name what it
// changes.
func LoadConfig(path string) (config Config, err error) {
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("unable to read config file: %v", err)
	}

	if err = yaml.Unmarshal(yamlFile, &config); err != nil {
		return config, fmt.Errorf("unable to unmarshal yaml: %v", err)
	}

	applyDefaults(&config)
	return config, nil
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Port == "" {
		config.Port = defaults.Port
	}
	if config.Baud == 0 {
		config.Baud = defaults.Baud
	}
	if config.Axes == nil {
		config.Axes = make(map[string]AxisConfig)
	}
	for name, axis := range defaults.Axes {
		if _, ok := config.Axes[name]; !ok {
			config.Axes[name] = axis
		}
	}
}
