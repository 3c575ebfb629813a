package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.Hours.Valid() {
		return fmt.Errorf("%w: invalid operating hours %d..%d",
			ErrInvalidInput, req.Hours.StartHour, req.Hours.EndHour)
	}

	return nil
}
