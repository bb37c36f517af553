// Package docs City Fighting API.
//
// Сервис сравнения французских городов: разрешает название в коммуну INSEE
// и собирает погоду, точки интереса, контур, социально-экономические показатели,
// транспорт и данные о жилье в один агрегат.
//
// Основные возможности:
// - Агрегат одного города со статусом каждого источника
// - Сравнение двух городов с рядами для графиков
// - Каталог городов с населением выше порога
// - Инвалидация кеша агрегатов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
