package main

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/peppercorn-robotics/gomaestro/onboard"
	device "github.com/peppercorn-robotics/gomaestro/onboard/errors"
)

type statusPayload struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type positionPayload struct {
	Axis     string `json:"axis"`
	Position int    `json:"position"`
}

type movingPayload struct {
	Moving bool `json:"moving"`
}

// apiRouter binds the REST surface onto a robot: gestures by name, axis
// positions, and the aggregate moving state.
func apiRouter(robot *onboard.Robot) chi.Router {
	r := chi.NewRouter()

	r.Post("/gesture/{name}", func(w http.ResponseWriter, req *http.Request) {
		gesture, err := onboard.ParseGesture(chi.URLParam(req, "name"))
		if err != nil {
			render.Status(req, http.StatusNotFound)
			render.JSON(w, req, statusPayload{Status: "error", Error: err.Error()})
			return
		}

		if err := robot.Perform(gesture); err != nil {
			renderDeviceError(w, req, err)
			return
		}

		render.JSON(w, req, statusPayload{Status: gesture.String()})
	})

	r.Get("/position/{axis}", func(w http.ResponseWriter, req *http.Request) {
		axis := chi.URLParam(req, "axis")
		pos, err := robot.Position(axis)
		if err != nil {
			renderDeviceError(w, req, err)
			return
		}

		render.JSON(w, req, positionPayload{Axis: axis, Position: pos})
	})

	r.Get("/moving", func(w http.ResponseWriter, req *http.Request) {
		moving, err := robot.Moving()
		if err != nil {
			renderDeviceError(w, req, err)
			return
		}

		render.JSON(w, req, movingPayload{Moving: moving})
	})

	r.Get("/moving/{axis}", func(w http.ResponseWriter, req *http.Request) {
		moving, err := robot.AxisMoving(chi.URLParam(req, "axis"))
		if err != nil {
			renderDeviceError(w, req, err)
			return
		}

		render.JSON(w, req, movingPayload{Moving: moving})
	})

	r.Post("/reset", func(w http.ResponseWriter, req *http.Request) {
		if err := robot.ResetAll(); err != nil {
			renderDeviceError(w, req, err)
			return
		}

		render.JSON(w, req, statusPayload{Status: "reset"})
	})

	return r
}

func renderDeviceError(w http.ResponseWriter, req *http.Request, err error) {
	switch err.(type) {
	case device.AxisError, device.ChannelError:
		render.Status(req, http.StatusNotFound)
	case device.ClosedError:
		render.Status(req, http.StatusServiceUnavailable)
	default:
		render.Status(req, http.StatusBadGateway)
	}
	render.JSON(w, req, statusPayload{Status: "error", Error: err.Error()})
}
