package catalog

import (
	"context"
	"testing"

	"homehelper/models"
)

type serviceRepoStub struct {
	services map[string]*models.Service
}

func newServiceRepoStub() *serviceRepoStub {
	return &serviceRepoStub{services: make(map[string]*models.Service)}
}

func (r *serviceRepoStub) Create(svc *models.Service) error {
	cp := *svc
	r.services[svc.ID] = &cp
	return nil
}

func (r *serviceRepoStub) Update(svc *models.Service) error {
	cp := *svc
	r.services[svc.ID] = &cp
	return nil
}

func (r *serviceRepoStub) GetByID(id string) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *serviceRepoStub) GetAll(onlyAvailable bool) ([]models.Service, error) {
	out := []models.Service{}
	for _, s := range r.services {
		if onlyAvailable && !s.Available {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *serviceRepoStub) GetByCategory(category models.ServiceCategory) ([]models.Service, error) {
	out := []models.Service{}
	for _, s := range r.services {
		if s.Category == category && s.Available {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *serviceRepoStub) SetAvailable(id string, available bool) error {
	if s, ok := r.services[id]; ok {
		s.Available = available
	}
	return nil
}

func TestCreateServiceAppliesDefaults(t *testing.T) {
	svc := NewCatalogService(newServiceRepoStub(), nil)

	entry := &models.Service{Name: "Deep Cleaning", Category: models.CategoryCleaning, Price: 50}
	if err := svc.CreateService(context.Background(), entry); err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("create did not assign an id")
	}
	if entry.PriceUnit != "hour" || entry.Duration != 60 {
		t.Fatalf("defaults not applied: unit=%q duration=%d", entry.PriceUnit, entry.Duration)
	}
	if !entry.Available {
		t.Fatal("new service should start available")
	}
}

func TestCreateServiceValidation(t *testing.T) {
	svc := NewCatalogService(newServiceRepoStub(), nil)
	ctx := context.Background()

	if err := svc.CreateService(ctx, &models.Service{Category: models.CategoryCleaning}); err == nil {
		t.Fatal("create without name succeeded")
	}
	if err := svc.CreateService(ctx, &models.Service{Name: "X", Category: models.CategoryCleaning, Price: -1}); err == nil {
		t.Fatal("create with negative price succeeded")
	}
}

func TestListServicesExcludesDisabled(t *testing.T) {
	repo := newServiceRepoStub()
	svc := NewCatalogService(repo, nil)
	ctx := context.Background()

	a := &models.Service{Name: "A", Category: models.CategoryCleaning, Price: 10}
	b := &models.Service{Name: "B", Category: models.CategoryPlumbing, Price: 20}
	if err := svc.CreateService(ctx, a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := svc.CreateService(ctx, b); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if err := svc.SetAvailability(ctx, b.ID, false); err != nil {
		t.Fatalf("disable b: %v", err)
	}

	list, err := svc.ListServices(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("list = %v, want only %s", list, a.ID)
	}
}

func TestListByCategory(t *testing.T) {
	svc := NewCatalogService(newServiceRepoStub(), nil)
	ctx := context.Background()

	clean := &models.Service{Name: "Clean", Category: models.CategoryCleaning, Price: 10}
	plumb := &models.Service{Name: "Plumb", Category: models.CategoryPlumbing, Price: 20}
	for _, s := range []*models.Service{clean, plumb} {
		if err := svc.CreateService(ctx, s); err != nil {
			t.Fatalf("create %s: %v", s.Name, err)
		}
	}

	list, err := svc.ListByCategory(ctx, models.CategoryPlumbing)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(list) != 1 || list[0].ID != plumb.ID {
		t.Fatalf("category list = %v, want only %s", list, plumb.ID)
	}
}

func TestSetAvailabilityUnknownService(t *testing.T) {
	svc := NewCatalogService(newServiceRepoStub(), nil)
	if err := svc.SetAvailability(context.Background(), "missing", false); err == nil {
		t.Fatal("disabling unknown service succeeded")
	}
}
