package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/peppercorn-robotics/gomaestro/onboard"
	"github.com/peppercorn-robotics/gomaestro/onboard/maestro"
)

func newTestAPI() (*maestro.Simulator, http.Handler) {
	sim := maestro.NewSimulator(0)
	robot, err := onboard.NewRobot(maestro.NewController(sim, 0), onboard.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return sim, apiRouter(robot)
}

func TestGestureEndpoint(t *testing.T) {
	sim, api := newTestAPI()

	Convey("a valid gesture runs against the device", t, func() {
		req := httptest.NewRequest("POST", "/gesture/forward-fastest", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		So(rr.Code, ShouldEqual, http.StatusOK)
		So(rr.Body.String(), ShouldContainSubstring, `"forward-fastest"`)
		So(sim.Target(1), ShouldEqual, 6900)
	})

	Convey("an unknown gesture is a 404", t, func() {
		req := httptest.NewRequest("POST", "/gesture/moonwalk", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		So(rr.Code, ShouldEqual, http.StatusNotFound)
	})
}

func TestPositionEndpoint(t *testing.T) {
	sim, api := newTestAPI()

	Convey("positions come back from the device model", t, func() {
		req := httptest.NewRequest("POST", "/gesture/turn-right", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)
		So(rr.Code, ShouldEqual, http.StatusOK)
		So(sim.Target(2), ShouldEqual, 7000)

		req = httptest.NewRequest("GET", "/position/steer", nil)
		rr = httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		So(rr.Code, ShouldEqual, http.StatusOK)

		var payload positionPayload
		So(json.Unmarshal(rr.Body.Bytes(), &payload), ShouldBeNil)
		So(payload.Axis, ShouldEqual, "steer")
		So(payload.Position, ShouldEqual, 7000)
	})

	Convey("an unknown axis is a 404", t, func() {
		req := httptest.NewRequest("GET", "/position/flipper", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		So(rr.Code, ShouldEqual, http.StatusNotFound)
	})
}

func TestMovingEndpoint(t *testing.T) {
	_, api := newTestAPI()

	Convey("the simulated device is always settled", t, func() {
		req := httptest.NewRequest("GET", "/moving", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		So(rr.Code, ShouldEqual, http.StatusOK)

		var payload movingPayload
		So(json.Unmarshal(rr.Body.Bytes(), &payload), ShouldBeNil)
		So(payload.Moving, ShouldBeFalse)
	})

	Convey("per-axis state is settled too, even after a command", t, func() {
		req := httptest.NewRequest("POST", "/gesture/forward", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)
		So(rr.Code, ShouldEqual, http.StatusOK)

		req = httptest.NewRequest("GET", "/moving/drive", nil)
		rr = httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		So(rr.Code, ShouldEqual, http.StatusOK)

		var payload movingPayload
		So(json.Unmarshal(rr.Body.Bytes(), &payload), ShouldBeNil)
		So(payload.Moving, ShouldBeFalse)
	})
}

func TestResetEndpoint(t *testing.T) {
	sim, api := newTestAPI()

	Convey("reset recenters every channel on the device", t, func() {
		req := httptest.NewRequest("POST", "/reset", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		So(rr.Code, ShouldEqual, http.StatusOK)
		for ch := 0; ch <= 4; ch++ {
			So(sim.Target(ch), ShouldEqual, 6000)
		}
	})
}
