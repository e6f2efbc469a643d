package queries

import (
	"context"

	"gorm.io/gorm"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// ListOrdersQueryHandler retrieves order summaries for one viewer. The
// scope plus the viewer's role fully determine the WHERE clause, so the
// result never contains an order the viewer may not see.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the list query, newest orders first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := listFilter(query)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			restaurant_id,
			order_price,
			delivery_fee,
			order_time,
			restaurant_lat,
			restaurant_lng,
			delivery_street,
			delivery_suburb,
			delivery_state,
			delivery_postcode
		FROM orders
		WHERE `+where+`
		ORDER BY order_time DESC, id DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	available := query.Scope() == ScopeAvailable
	orders := make([]ListOrdersQueryResponse, 0)

	for rows.Next() {
		var resp ListOrdersQueryResponse
		var lat, lng *float64
		var address AddressResponse

		err = rows.Scan(
			&resp.ID,
			&resp.Status,
			&resp.RestaurantID,
			&resp.OrderPrice,
			&resp.DeliveryFee,
			&resp.OrderTime,
			&lat,
			&lng,
			&address.Street,
			&address.Suburb,
			&address.State,
			&address.Postcode,
		)
		if err != nil {
			return nil, err
		}

		if resp.DeliveryFee != nil {
			total := resp.OrderPrice + *resp.DeliveryFee
			resp.TotalPrice = &total
		}
		if available {
			// Drivers judge a claim by the whole trip, so the open list
			// carries the delivery address alongside the pickup point.
			resp.DeliveryAddress = &address
			if lat != nil && lng != nil {
				resp.RestaurantLocation = &PointResponse{Latitude: *lat, Longitude: *lng}
			}
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// listFilter maps scope and viewer role to the WHERE clause.
func listFilter(query ListOrdersQuery) (string, []any) {
	viewer := query.Viewer()

	if query.Scope() == ScopeAvailable {
		return `driver_id IS NULL AND status IN (?, ?)`,
			[]any{order.RestaurantAccepted.String(), order.ReadyForPickup.String()}
	}

	switch viewer.Role() {
	case kernel.RoleCustomer:
		return `customer_id = ?`, []any{viewer.ID()}
	case kernel.RoleRestaurant:
		return `restaurant_id = ?`, []any{viewer.ID()}
	default:
		return `driver_id = ?`, []any{viewer.ID()}
	}
}
