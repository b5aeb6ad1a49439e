package main

import (
	"context"
	"log"
	"os"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/repository/unitofwork"
	"gym-membership-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Default price list in PHP.
var prices = []entity.GymPricing{
	{MemberType: entity.MemberTypeStudent, PlanType: entity.GymPlanDaily, Price: 50},
	{MemberType: entity.MemberTypeStudent, PlanType: entity.GymPlanMonthly, Price: 500},
	{MemberType: entity.MemberTypeStudent, PlanType: entity.GymPlanAnnual, Price: 5000},
	{MemberType: entity.MemberTypeFaculty, PlanType: entity.GymPlanDaily, Price: 70},
	{MemberType: entity.MemberTypeFaculty, PlanType: entity.GymPlanMonthly, Price: 700},
	{MemberType: entity.MemberTypeFaculty, PlanType: entity.GymPlanAnnual, Price: 7000},
	{MemberType: entity.MemberTypeOutsider, PlanType: entity.GymPlanDaily, Price: 100},
	{MemberType: entity.MemberTypeOutsider, PlanType: entity.GymPlanMonthly, Price: 1000},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.Open(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding gym pricing...")

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Fatal("Error: Failed to begin transaction:", err)
	}
	defer uow.Rollback()

	for i := range prices {
		p := prices[i]
		if err := uow.PricingRepository().Upsert(ctx, &p); err != nil {
			color.Red("Failed to seed %s/%s: %v", p.MemberType, p.PlanType, err)
			return
		}
		color.Green("  %-8s %-7s %8.2f", p.MemberType, p.PlanType, p.Price)
	}

	if err := uow.Commit(); err != nil {
		log.Fatal("Error: Failed to commit pricing:", err)
	}
	color.Cyan("Pricing seeded (%d rows). Outsiders have no Annual plan.", len(prices))
}
