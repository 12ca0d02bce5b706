package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tiara-mobile-zone/cache"
	"tiara-mobile-zone/models"
	"tiara-mobile-zone/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StockController handles catalog requests
type StockController struct {
	Collection *mongo.Collection
	DB         *mongo.Database
	Cache      *cache.Cache
}

// NewStockController creates a new StockController
func NewStockController(client *mongo.Client, c *cache.Cache) *StockController {
	db := client.Database(utils.DatabaseName)
	return &StockController{
		Collection: db.Collection("stock_items"),
		DB:         db,
		Cache:      c,
	}
}

// GetStock retrieves all stock items
func (sc *StockController) GetStock(w http.ResponseWriter, r *http.Request) {
	if cached, found := sc.Cache.Get("stock:list"); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := sc.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching stock items")
		return
	}
	defer cursor.Close(ctx)

	items := []models.StockItem{}
	if err := cursor.All(ctx, &items); err != nil {
		writeError(w, http.StatusInternalServerError, "Error reading stock items")
		return
	}

	sc.Cache.Set("stock:list", items, 2*time.Minute)
	writeJSON(w, http.StatusOK, items)
}

// GetStockItem retrieves a single stock item by ID
func (sc *StockController) GetStockItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid stock item ID")
		return
	}

	cacheKey := fmt.Sprintf("stock:item:%d", id)
	if cached, found := sc.Cache.Get(cacheKey); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.StockItem
	err = sc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "Stock item not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching stock item")
		return
	}

	sc.Cache.Set(cacheKey, item, 5*time.Minute)
	writeJSON(w, http.StatusOK, item)
}

// CreateStockItem handles adding a new stock item (Admin only)
func (sc *StockController) CreateStockItem(w http.ResponseWriter, r *http.Request) {
	var input models.StockItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.Validate.Struct(&input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item := input.ToStockItem()
	id, err := utils.NextSequence(ctx, sc.DB, "stock_items")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating stock item")
		return
	}
	item.ID = id

	if _, err := sc.Collection.InsertOne(ctx, item); err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating stock item")
		return
	}

	sc.Cache.DeleteByPrefix("stock:")
	writeJSON(w, http.StatusCreated, item)
}

// UpdateStockItem handles partially updating a stock item (Admin only).
// Concurrent updates to the same item are last-write-wins.
func (sc *StockController) UpdateStockItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid stock item ID")
		return
	}

	var update models.StockItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Brand != nil {
		set["brand"] = *update.Brand
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.OS != nil {
		set["os"] = *update.OS
	}
	if update.Features != nil {
		set["features"] = update.Features
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.Images != nil {
		primary := ""
		if update.Image != nil {
			primary = *update.Image
		}
		set["images"] = models.NormalizeImages(update.Images, primary)
	}
	if update.Rating != nil {
		set["rating"] = models.CoerceRating(update.Rating)
	}
	if update.Reviews != nil {
		set["reviews"] = *update.Reviews
	}
	if update.InStock != nil {
		set["in_stock"] = *update.InStock
	}
	if update.StockCount != nil {
		set["stock_count"] = *update.StockCount
	}
	if update.IsNew != nil {
		set["is_new"] = *update.IsNew
	}
	if update.IsHot != nil {
		set["is_hot"] = *update.IsHot
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	if len(set) == 0 {
		writeError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.StockItem
	err = sc.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "Stock item not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating stock item")
		return
	}

	sc.Cache.DeleteByPrefix("stock:")
	writeJSON(w, http.StatusOK, item)
}

// DeleteStockItem handles deleting a stock item (Admin only)
func (sc *StockController) DeleteStockItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid stock item ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := sc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error deleting stock item")
		return
	}
	if result.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Stock item not found")
		return
	}

	sc.Cache.DeleteByPrefix("stock:")
	w.WriteHeader(http.StatusNoContent)
}
