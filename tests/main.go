// Command tests seeds the configured record store with a demo company and its services,
// printing the ids a client needs to try POST /agendar.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"agendamento/config"
	"agendamento/database"
	"agendamento/models"
	"agendamento/services/company"
	"agendamento/utils"

	"go.uber.org/zap"
)

var demoServices = []models.ServiceRequest{
	{Name: "Corte de cabelo", Price: 50, DurationMinutes: 30},
	{Name: "Barba", Price: 30, DurationMinutes: 20},
	{Name: "Manicure", Price: 40, DurationMinutes: 45},
	{Name: "Escova", Price: 60, DurationMinutes: 40},
}

func main() {
	owner := flag.String("owner", "00000000-0000-0000-0000-000000000001", "owner user id of the seeded company")
	name := flag.String("name", "Salão Demonstração", "company name")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Open(ctx, config.AppConfig, logger)
	if err != nil {
		logger.Fatal("seed: failed to open record store", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	svc := &company.DefaultCompanyService{Repo: store, Logger: logger}

	c, err := svc.RegisterCompany(ctx, *owner, models.CompanyRequest{Name: *name, Category: "beleza"})
	if err != nil {
		logger.Fatal("seed: failed to create company", zap.Error(err))
	}
	fmt.Printf("company_id: %s\n", c.ID)

	for _, req := range demoServices {
		s, err := svc.AddService(ctx, *owner, c.ID, req)
		if err != nil {
			logger.Fatal("seed: failed to create service", zap.String("service", req.Name), zap.Error(err))
		}
		fmt.Printf("service_id: %s  (%s)\n", s.ID, s.Name)
	}
}
