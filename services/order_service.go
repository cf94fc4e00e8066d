// services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"barbershop-backend/apperrors"
	"barbershop-backend/models"
	"barbershop-backend/utils"
)

// OrdersPageSize is the fixed page size of the staff order listing.
const OrdersPageSize = 10

type OrderInput struct {
	ClientName    string
	Phone         string
	Comment       string
	MasterID      *uint
	ServiceIDs    []uint
	AppointmentAt *time.Time
}

// OrderSearchParams drives the staff listing. SearchIn is a subset of
// {name, phone, comment, status}; empty means {name} when Search is set.
type OrderSearchParams struct {
	Search   string
	SearchIn []string
	Page     int
}

type OrderService struct {
	db            *gorm.DB
	notifications *NotificationService
	adminBaseURL  string
}

func NewOrderService(db *gorm.DB, notifications *NotificationService, adminBaseURL string) *OrderService {
	return &OrderService{
		db:            db,
		notifications: notifications,
		adminBaseURL:  adminBaseURL,
	}
}

// SubmitOrder runs the order intake workflow: validate -> persist the
// header (status not_approved) -> attach service associations -> fire the
// owner notification once the set becomes non-empty.
//
// Unknown service ids are dropped silently; the booking still goes
// through with whatever resolved.
func (s *OrderService) SubmitOrder(ctx context.Context, input OrderInput) (*models.Order, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.ClientName) == "" {
		fields["client_name"] = "Имя клиента обязательно"
	}
	if strings.TrimSpace(input.Phone) == "" {
		fields["phone"] = "Телефон обязателен"
	} else if !utils.ValidatePhone(input.Phone) {
		fields["phone"] = "Неверный формат телефона"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("Проверьте ввод данных", fields)
	}

	if input.MasterID != nil {
		var master models.Master
		if err := s.db.First(&master, *input.MasterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("master")
			}
			return nil, apperrors.Database(err)
		}
	}

	services, err := s.resolveServices(input.ServiceIDs)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ClientName:    input.ClientName,
		Phone:         input.Phone,
		Comment:       input.Comment,
		Status:        models.StatusNotApproved,
		MasterID:      input.MasterID,
		AppointmentAt: input.AppointmentAt,
	}
	if err := s.db.Create(order).Error; err != nil {
		return nil, apperrors.Database(err)
	}

	if err := s.attachServices(order, services); err != nil {
		return nil, err
	}
	return order, nil
}

// AddServices attaches more services to an existing order (staff edits
// after intake). The fire-once rule still applies: only the attach that
// takes the set from empty to non-empty notifies.
func (s *OrderService) AddServices(orderID uint, serviceIDs []uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, apperrors.Database(err)
	}

	services, err := s.resolveServices(serviceIDs)
	if err != nil {
		return nil, err
	}
	if err := s.attachServices(&order, services); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) resolveServices(ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var services []models.Service
	if err := s.db.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	return services, nil
}

// attachServices writes the order<->service associations and fires the
// owner notification exactly once, on the empty -> non-empty transition.
// The flag is flipped before dispatch so a concurrent edit cannot
// double-fire.
func (s *OrderService) attachServices(order *models.Order, services []models.Service) error {
	if len(services) == 0 {
		return nil
	}

	existing := s.db.Model(order).Association("Services").Count()
	if err := s.db.Model(order).Association("Services").Append(&services); err != nil {
		return apperrors.Database(err)
	}

	if existing > 0 || order.NotificationSent {
		return nil
	}

	if err := s.db.Model(order).Update("notification_sent", true).Error; err != nil {
		return apperrors.Database(err)
	}
	order.NotificationSent = true
	s.notifications.Dispatch(models.NotificationKindOrder, s.orderMessage(order))
	return nil
}

// ListOrders is the staff search: per-field case-insensitive substring,
// fields OR-combined, newest first, fixed page size.
func (s *OrderService) ListOrders(params OrderSearchParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})

	search := strings.TrimSpace(params.Search)
	if search != "" {
		searchIn := params.SearchIn
		if len(searchIn) == 0 {
			searchIn = []string{"name"}
		}

		pattern := "%" + strings.ToLower(search) + "%"
		filters := s.db.Session(&gorm.Session{NewDB: true})
		matched := false

		for _, field := range searchIn {
			switch field {
			case "name":
				filters = filters.Or("LOWER(client_name) LIKE ?", pattern)
				matched = true
			case "phone":
				filters = filters.Or("LOWER(phone) LIKE ?", pattern)
				matched = true
			case "comment":
				filters = filters.Or("LOWER(comment) LIKE ?", pattern)
				matched = true
			case "status":
				// Match the human-readable labels first; fall back to the
				// raw codes so staff can type either.
				if codes := matchingStatusCodes(search); len(codes) > 0 {
					filters = filters.Or("status IN ?", codes)
				} else {
					filters = filters.Or("LOWER(status) LIKE ?", pattern)
				}
				matched = true
			}
		}
		if matched {
			query = query.Where(filters)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Database(err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	var orders []models.Order
	err := query.
		Preload("Master").
		Preload("Services").
		Order("created_at DESC, id DESC").
		Limit(OrdersPageSize).
		Offset((page - 1) * OrdersPageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return orders, total, nil
}

func matchingStatusCodes(search string) []string {
	needle := strings.ToLower(search)
	var codes []string
	for _, choice := range models.StatusChoices {
		if strings.Contains(strings.ToLower(choice.Label), needle) {
			codes = append(codes, choice.Code)
		}
	}
	return codes
}

// GetOrder loads one order with its master and services for the staff
// detail view.
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Master").Preload("Services").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, apperrors.Database(err)
	}
	return &order, nil
}

// UpdateStatus advances an order to a known status code (staff action).
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, apperrors.Validation("Неизвестный статус", map[string]string{
			"status": fmt.Sprintf("%q не является статусом заказа", status),
		})
	}

	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, apperrors.Database(err)
	}

	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	order.Status = status
	return &order, nil
}

func (s *OrderService) orderMessage(order *models.Order) string {
	var services []models.Service
	_ = s.db.Model(order).Association("Services").Find(&services)
	names := make([]string, 0, len(services))
	for _, svc := range services {
		names = append(names, svc.Name)
	}
	serviceList := strings.Join(names, ", ")
	if serviceList == "" {
		serviceList = "Не указаны"
	}

	masterName := "Не указан"
	if order.MasterID != nil {
		var master models.Master
		if err := s.db.First(&master, *order.MasterID).Error; err == nil {
			masterName = master.Name
		}
	}

	comment := order.Comment
	if comment == "" {
		comment = "Не указан"
	}

	appointment := "Не указана"
	if order.AppointmentAt != nil {
		appointment = order.AppointmentAt.Format("02.01.2006 15:04")
	}

	return fmt.Sprintf(`*Новая запись на услугу!*

*Имя:* %s
*Телефон:* %s
*Комментарий:* %s
*Услуги:* %s
*Мастер:* %s
*Желаемая дата:* %s
*Ссылка на запись:* %s/orders/%d

#новаязапись`,
		order.ClientName, order.Phone, comment, serviceList,
		masterName, appointment, s.adminBaseURL, order.ID)
}
