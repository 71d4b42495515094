// Package docs Journey Microservice API.
//
// Микросервис отслеживания поездок в транспортной симуляции.
// Предоставляет API для выбора ребер дорожной сети, расчета маршрутов,
// запуска поездок симулируемых автомобилей и статистики точности
// ETA-предсказаний.
//
// Основные возможности:
// - Геометрия дорожной сети, готовая к отрисовке
// - Выбор старта и назначения кликами по ребрам
// - Расчет маршрута и его геометрии
// - Запуск и отслеживание поездок
// - Статистика точности предсказаний (MAE, RMSE, MAPE)
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
