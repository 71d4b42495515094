// Package simulation - HTTP-клиент симуляционного backend (SUMO + ETA-модель).
package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/journey-microservice/internal/config"
	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создает новый клиент симуляционного backend
func NewClient(cfg *config.SimulationConfig, logger *zap.Logger) repository.SimulationRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// networkPayload - формат /api/network/data: плоские списки + bounds
type networkPayload struct {
	Junctions []*domain.Junction `json:"junctions"`
	Edges     []*domain.Edge     `json:"edges"`
	Bounds    domain.BoundingBox `json:"bounds"`
}

// GetNetworkData загружает снапшот дорожной сети
func (c *client) GetNetworkData(ctx context.Context) (*domain.NetworkGraph, error) {
	var payload networkPayload
	if err := c.getJSON(ctx, "/api/network/data", &payload); err != nil {
		return nil, err
	}

	graph := &domain.NetworkGraph{
		Edges:     make(map[string]*domain.Edge, len(payload.Edges)),
		Junctions: make(map[string]*domain.Junction, len(payload.Junctions)),
		Bounds:    payload.Bounds,
	}
	for _, j := range payload.Junctions {
		graph.Junctions[j.ID] = j
	}
	for _, e := range payload.Edges {
		graph.Edges[e.ID] = e
	}

	c.logger.Info("Network data loaded",
		zap.Int("junctions", len(graph.Junctions)),
		zap.Int("edges", len(graph.Edges)))

	return graph, nil
}

// routeResponse - ответ calculate-route-by-edges; при неудаче backend
// возвращает 200 с заполненным полем error
type routeResponse struct {
	Edges    []string `json:"edges"`
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Error    string   `json:"error"`
}

// CalculateRouteByEdges считает маршрут между двумя ребрами
func (c *client) CalculateRouteByEdges(ctx context.Context, startEdge, endEdge string) (*domain.Route, error) {
	body := map[string]string{
		"start_edge": startEdge,
		"end_edge":   endEdge,
	}

	var resp routeResponse
	if err := c.postJSON(ctx, "/api/simulation/calculate-route-by-edges", body, &resp); err != nil {
		return nil, err
	}

	if resp.Error != "" {
		c.logger.Warn("Route calculation rejected by backend",
			zap.String("start_edge", startEdge),
			zap.String("end_edge", endEdge),
			zap.String("backend_error", resp.Error))
		return nil, fmt.Errorf("route calculation failed: %s", resp.Error)
	}

	return &domain.Route{
		Edges:    resp.Edges,
		Distance: resp.Distance,
		Duration: resp.Duration,
	}, nil
}

// StartJourney добавляет автомобиль в симуляцию по рассчитанному маршруту
func (c *client) StartJourney(ctx context.Context, startEdge, endEdge string, routeEdges []string) (*domain.JourneyStart, error) {
	body := map[string]interface{}{
		"start_edge":  startEdge,
		"end_edge":    endEdge,
		"route_edges": routeEdges,
	}

	var start domain.JourneyStart
	if err := c.postJSON(ctx, "/api/simulation/start-journey", body, &start); err != nil {
		return nil, err
	}

	c.logger.Info("Journey started in simulation",
		zap.String("vehicle_id", start.VehicleID),
		zap.Float64("predicted_eta", start.PredictedETA))

	return &start, nil
}

// GetSimulationStatus возвращает агрегированное состояние симуляции
func (c *client) GetSimulationStatus(ctx context.Context) (*domain.SimulationStatus, error) {
	var status domain.SimulationStatus
	if err := c.getJSON(ctx, "/api/simulation/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetActiveVehicles возвращает позиции активных автомобилей
func (c *client) GetActiveVehicles(ctx context.Context) ([]domain.VehicleState, error) {
	var payload struct {
		Vehicles []domain.VehicleState `json:"vehicles"`
	}
	if err := c.getJSON(ctx, "/api/simulation/vehicles/active", &payload); err != nil {
		return nil, err
	}
	return payload.Vehicles, nil
}

// GetFinishedVehicles возвращает завершившие поездку автомобили
func (c *client) GetFinishedVehicles(ctx context.Context) ([]domain.FinishedVehicle, error) {
	var payload struct {
		FinishedVehicles []domain.FinishedVehicle `json:"finished_vehicles"`
	}
	if err := c.getJSON(ctx, "/api/simulation/vehicles/finished", &payload); err != nil {
		return nil, err
	}
	return payload.FinishedVehicles, nil
}

// ClearFinishedVehicles очищает список завершенных на стороне backend
func (c *client) ClearFinishedVehicles(ctx context.Context) error {
	return c.postJSON(ctx, "/api/simulation/vehicles/finished/clear", nil, nil)
}

// StopSimulation останавливает симуляцию
func (c *client) StopSimulation(ctx context.Context) error {
	return c.postJSON(ctx, "/api/simulation/stop", nil, nil)
}

func (c *client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Simulation backend request failed",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Simulation backend returned error",
			zap.String("url", req.URL.String()),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("simulation backend error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
