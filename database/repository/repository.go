package repository

import (
	"context"

	"apptreminders/config"
	"apptreminders/database"
	appointmentRepo "apptreminders/database/repository/appointment"
	reminderRepo "apptreminders/database/repository/reminder"
	userRepo "apptreminders/database/repository/user"
	"apptreminders/utils"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces used by the reminder services.
type ReminderRepository = reminderRepo.ReminderRepository

type AppointmentRepository = appointmentRepo.AppointmentRepository

type UserRepository = userRepo.UserRepository

// Repositories groups the data access used by one process.
type Repositories struct {
	Reminders    ReminderRepository
	Appointments AppointmentRepository
	Users        UserRepository
	// Store answers health checks for the selected backend.
	Store utils.Pinger
}

// NewFirestoreRepositories wires every repository to Cloud Firestore.
func NewFirestoreRepositories(client *firestore.Client, cfg *config.Config) *Repositories {
	reminders := reminderRepo.NewFirestoreReminderRepo(client, cfg.NotificationsCollection)
	return &Repositories{
		Reminders:    reminders,
		Appointments: appointmentRepo.NewFirestoreAppointmentRepo(client, cfg.AppointmentsCollection),
		Users:        userRepo.NewFirestoreUserRepo(client, cfg.UsersCollection),
		Store:        reminders,
	}
}

// NewMongoRepositories wires every repository to MongoDB and creates the query indexes.
// The deployment must support transactions.
func NewMongoRepositories(ctx context.Context, client *mongo.Client, cfg *config.Config) (*Repositories, error) {
	if err := database.RequireTransactions(ctx, client); err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDatabase)

	reminders := reminderRepo.NewMongoReminderRepo(db.Collection(cfg.NotificationsCollection))
	if err := reminders.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	users := userRepo.NewMongoUserRepo(db.Collection(cfg.UsersCollection))
	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	return &Repositories{
		Reminders:    reminders,
		Appointments: appointmentRepo.NewMongoAppointmentRepo(db.Collection(cfg.AppointmentsCollection)),
		Users:        users,
		Store:        reminders,
	}, nil
}
