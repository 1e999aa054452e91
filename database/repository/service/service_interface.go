package serviceRepo

import "homehelper/models"

// ServiceRepository defines persistence operations for the service catalog.
type ServiceRepository interface {
	Create(service *models.Service) error
	Update(service *models.Service) error
	GetByID(id string) (*models.Service, error)
	GetAll(onlyAvailable bool) ([]models.Service, error)
	GetByCategory(category models.ServiceCategory) ([]models.Service, error)
	SetAvailable(id string, available bool) error
}
