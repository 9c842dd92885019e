package repository

import (
	bookingRepo "servicehub/database/repository/booking"
	cartRepo "servicehub/database/repository/cart"
	catalogRepo "servicehub/database/repository/catalog"
	messagingRepo "servicehub/database/repository/messaging"
	requestRepo "servicehub/database/repository/request"
)

// Re-export the CatalogRepository interface and constructor.
type CatalogRepository = catalogRepo.CatalogRepository

var NewMongoCatalogRepo = catalogRepo.NewMongoCatalogRepo

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the RequestRepository interface and constructor.
type RequestRepository = requestRepo.RequestRepository

var NewMongoRequestRepo = requestRepo.NewMongoRequestRepo

// Re-export the MessagingRepository interface and constructor.
type MessagingRepository = messagingRepo.MessagingRepository

var NewMongoMessagingRepo = messagingRepo.NewMongoMessagingRepo

// Re-export cart persistence.
type (
	CartStorage       = cartRepo.CartStorage
	MemoryCartStorage = cartRepo.MemoryCartStorage
)

var (
	NewRedisCartStorage  = cartRepo.NewRedisCartStorage
	NewMemoryCartStorage = cartRepo.NewMemoryCartStorage
)
