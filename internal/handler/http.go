package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/internal/middleware"
	"github.com/SergeyBogomolovv/publika-insight/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, form entities.OrderForm, packageID string) (entities.Order, error)
	TrackByOrderID(ctx context.Context, orderID string) (entities.Order, error)
	ListAll(ctx context.Context) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.Status) (entities.Order, error)
}

type SessionGate interface {
	Login(username, password string) (string, error)
	Logout(token string) error
	Authorize(token string) (string, error)
}

const maxOrderIDLen = 64

type HTTPHandler struct {
	logger      *slog.Logger
	validate    *validator.Validate
	svc         OrderService
	gate        SessionGate
	contactLink string
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService, gate SessionGate, contactLink string) *HTTPHandler {
	return &HTTPHandler{
		logger:      logger.With(slog.String("handler", "http")),
		validate:    newValidator(),
		svc:         svc,
		gate:        gate,
		contactLink: contactLink,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Get("/catalog", h.GetCatalog)
	r.Get("/contact", h.Contact)
	r.Post("/orders", h.PlaceOrder)
	r.Get("/orders/{order_id}", h.TrackOrder)

	r.Post("/admin/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminOnly(h.logger, h.gate))
		r.Post("/admin/logout", h.Logout)
		r.Get("/admin/orders", h.ListOrders)
		r.Patch("/admin/orders/{order_id}/status", h.UpdateStatus)
	})
}

// GetCatalog возвращает тарифы.
// @Summary      Каталог тарифов
// @Description  Возвращает тарифы публикации, темы и уровни журналов для формы заказа
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  Catalog
// @Router       /catalog [get]
func (h *HTTPHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, CatalogToJSON(), http.StatusOK)
}

// Contact перенаправляет в чат с менеджером.
// @Summary      Связаться с менеджером
// @Description  Перенаправляет на ссылку чата с заранее заполненным сообщением
// @Tags         catalog
// @Success      302
// @Router       /contact [get]
func (h *HTTPHandler) Contact(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.contactLink, http.StatusFound)
}

// PlaceOrder оформляет заказ.
// @Summary      Оформить заказ
// @Description  Проверяет форму, создает заказ со статусом Processing и сохраняет его
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      OrderRequest  true  "Форма заказа"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.svc.PlaceOrder(ctx, OrderRequestToForm(req), req.PackageID)

	var fields entities.FieldErrors
	if errors.As(err, &fields) {
		utils.WriteFieldErrors(w, fields)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to place order", slog.Any("error", err))
		utils.WriteError(w, "failed to submit order, please try again", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// TrackOrder возвращает статус заказа.
// @Summary      Отследить заказ
// @Description  Возвращает текущий статус заказа по его идентификатору
// @Tags         orders
// @Produce      json
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  OrderStatus
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if len(orderID) > maxOrderIDLen {
		utils.WriteFieldErrors(w, map[string]string{"order_id": "max"})
		return
	}

	order, err := h.svc.TrackByOrderID(ctx, orderID)

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to track order", slog.Any("error", err), slog.String("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderStatusToJSON(order), http.StatusOK)
}

// Login открывает сессию администратора.
// @Summary      Вход администратора
// @Description  Проверяет учетные данные и выдает токен сессии, токен также ставится в cookie
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Учетные данные"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401  {object}  utils.ErrorResponse "Неверные учетные данные"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /admin/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	token, err := h.gate.Login(req.Username, req.Password)

	if errors.Is(err, entities.ErrInvalidCredentials) {
		utils.WriteError(w, "invalid username or password", http.StatusUnauthorized)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue admin session", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, LoginResponse{Token: token}, http.StatusOK)
}

// Logout завершает сессию администратора.
// @Summary      Выход администратора
// @Description  Отзывает текущий токен сессии
// @Tags         admin
// @Security     AdminSession
// @Success      204
// @Failure      401  {object}  utils.ErrorResponse "Не авторизован"
// @Router       /admin/logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, _ := middleware.TokenFromContext(ctx)
	if err := h.gate.Logout(token); err != nil {
		h.logger.DebugContext(ctx, "logout with invalid session", slog.Any("error", err))
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders возвращает все заказы.
// @Summary      Список заказов
// @Description  Возвращает все заказы, новые первыми
// @Tags         admin
// @Produce      json
// @Security     AdminSession
// @Success      200  {array}   Order
// @Failure      401  {object}  utils.ErrorResponse "Не авторизован"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /admin/orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.svc.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// UpdateStatus меняет статус заказа.
// @Summary      Изменить статус заказа
// @Description  Устанавливает статус и возвращает заказ в том виде, в котором он сохранен
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AdminSession
// @Param        order_id  path      string               true  "Идентификатор заказа"
// @Param        status    body      StatusUpdateRequest  true  "Новый статус"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401  {object}  utils.ErrorResponse "Не авторизован"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /admin/orders/{order_id}/status [patch]
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	var req StatusUpdateRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	if len(orderID) > maxOrderIDLen {
		utils.WriteFieldErrors(w, map[string]string{"order_id": "max"})
		return
	}

	order, err := h.svc.UpdateStatus(ctx, orderID, entities.Status(req.Status))

	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrInvalidStatus):
		utils.WriteFieldErrors(w, map[string]string{"status": "oneof"})
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to update order status", slog.Any("error", err), slog.String("order_id", orderID))
		utils.WriteError(w, "failed to update status", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(utils.JSONTagName)
	return v
}
