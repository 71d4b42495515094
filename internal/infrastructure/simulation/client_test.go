package simulation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/journey-microservice/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.SimulationConfig{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}
	c := NewClient(cfg, zap.NewNop()).(*client)
	return server, c
}

func TestClient_GetNetworkData(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		payload := map[string]interface{}{
			"junctions": []map[string]interface{}{
				{"id": "J1", "x": 0.0, "y": 0.0},
				{"id": "J2", "x": 100.0, "y": 0.0},
			},
			"edges": []map[string]interface{}{
				{"id": "A1", "from": "J1", "to": "J2", "length": 100.0},
				{"id": "E1", "from": "J2", "to": "J1", "shape_points": [][]float64{{100, 0}, {50, 10}, {0, 0}}},
			},
			"bounds": map[string]float64{"min_x": 0, "max_x": 100, "min_y": 0, "max_y": 10},
		}

		_, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/network/data", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(payload)
		})

		graph, err := c.GetNetworkData(context.Background())
		require.NoError(t, err)

		assert.Len(t, graph.Junctions, 2)
		assert.Len(t, graph.Edges, 2)
		assert.Equal(t, 100.0, graph.Bounds.MaxX)

		express := graph.Edge("E1")
		require.NotNil(t, express)
		require.Len(t, express.ShapePoints, 3)
		assert.Equal(t, 50.0, express.ShapePoints[1][0])
	})

	t.Run("non-200 response", func(t *testing.T) {
		_, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := c.GetNetworkData(context.Background())
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{not json"))
		})

		_, err := c.GetNetworkData(context.Background())
		assert.Error(t, err)
	})
}

func TestClient_CalculateRouteByEdges(t *testing.T) {
	t.Run("successful route", func(t *testing.T) {
		_, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/simulation/calculate-route-by-edges", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "A1", body["start_edge"])
			assert.Equal(t, "A9", body["end_edge"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"edges":    []string{"A1", "A5", "A9"},
				"distance": 420.5,
				"duration": 30.2,
			})
		})

		route, err := c.CalculateRouteByEdges(context.Background(), "A1", "A9")
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "A5", "A9"}, route.Edges)
		assert.Equal(t, 420.5, route.Distance)
		assert.Equal(t, 30.2, route.Duration)
	})

	t.Run("backend returns error payload with 200", func(t *testing.T) {
		_, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"error": "No route found"})
		})

		route, err := c.CalculateRouteByEdges(context.Background(), "A1", "A9")
		assert.Nil(t, route)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No route found")
	})
}

func TestClient_StartJourney(t *testing.T) {
	_, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "A1", body["start_edge"])
		assert.Len(t, body["route_edges"], 3)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"vehicle_id":        "journey_vehicle_1a2b3c4d",
			"status":            "started",
			"start_time":        18030.0,
			"start_time_string": "05:00:30",
			"distance":          420.5,
			"predicted_eta":     95.0,
		})
	})

	start, err := c.StartJourney(context.Background(), "A1", "A9", []string{"A1", "A5", "A9"})
	require.NoError(t, err)
	assert.Equal(t, "journey_vehicle_1a2b3c4d", start.VehicleID)
	assert.Equal(t, 18030.0, start.StartTime)
	assert.Equal(t, "05:00:30", start.StartTimeString)
	assert.Equal(t, 95.0, start.PredictedETA)
}

func TestClient_GetFinishedVehicles(t *testing.T) {
	_, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"finished_vehicles": []map[string]interface{}{
				{
					"id":         "journey_vehicle_1a2b3c4d",
					"start_time": 18030.0,
					"end_time":   18150.0,
					"prediction": map[string]float64{
						"predicted_travel_time": 95.0,
						"predicted_eta":         18125.0,
					},
				},
			},
		})
	})

	finished, err := c.GetFinishedVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, 18150.0, finished[0].EndTime)
	require.NotNil(t, finished[0].Prediction)
	assert.Equal(t, 95.0, finished[0].Prediction.PredictedTravelTime)
}

func TestClient_GetActiveVehicles(t *testing.T) {
	t.Run("vehicle positions decoded", func(t *testing.T) {
		_, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"vehicles": []map[string]interface{}{
					{"id": "veh_1", "x": 10.0, "y": 20.0, "speed": 13.9, "status": "driving"},
				},
			})
		})

		vehicles, err := c.GetActiveVehicles(context.Background())
		require.NoError(t, err)
		require.Len(t, vehicles, 1)
		assert.Equal(t, 10.0, vehicles[0].X)
		assert.Equal(t, "driving", vehicles[0].Status)
	})

	t.Run("backend unreachable", func(t *testing.T) {
		cfg := &config.SimulationConfig{
			BaseURL:        "http://127.0.0.1:1",
			RequestTimeout: 100 * time.Millisecond,
		}
		c := NewClient(cfg, zap.NewNop())

		_, err := c.GetActiveVehicles(context.Background())
		assert.Error(t, err)
	})
}
