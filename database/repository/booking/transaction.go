package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"carebridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// BookSlot inserts the booking record and marks its slot scheduled within one
// mongo transaction. The slot update filters on status "available", so two
// racing bookings for the same slot cannot both commit: the loser's update
// matches nothing and the transaction aborts with ErrSlotUnavailable.
func (r *MongoBookingRepo) BookSlot(ctx context.Context, booking *models.Booking) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"id": booking.DoctorID,
			"schedules": bson.M{
				"$elemMatch": bson.M{
					"date": booking.Date,
					"slots": bson.M{
						"$elemMatch": bson.M{
							"id":     booking.SlotID,
							"status": models.SlotAvailable,
						},
					},
				},
			},
		}

		update := bson.M{
			"$set": bson.M{
				"schedules.$[d].slots.$[s].status":    models.SlotScheduled,
				"schedules.$[d].slots.$[s].patientId": booking.PatientID,
				"schedules.$[d].slots.$[s].bookingId": booking.ID,
			},
			"$addToSet": bson.M{"patientIds": booking.PatientID},
		}

		opts := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"d.date": booking.Date},
				bson.M{"s.id": booking.SlotID, "s.status": models.SlotAvailable},
			},
		})

		res, err := r.doctorColl.UpdateOne(sc, filter, update, opts)
		if err != nil {
			return fmt.Errorf("mark slot scheduled failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotUnavailable
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotUnavailable {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}

// CancelBooking marks the booking cancelled and releases its slot within one
// mongo transaction. Both updates are conditional: the booking must still be
// scheduled and the slot must still reference this booking.
func (r *MongoBookingRepo) CancelBooking(ctx context.Context, booking *models.Booking) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		bookingFilter := bson.M{
			"id":        booking.ID,
			"patientId": booking.PatientID,
			"status":    models.SlotScheduled,
		}
		res, err := r.bookingColl.UpdateOne(sc, bookingFilter,
			bson.M{"$set": bson.M{"status": models.SlotCancelled}})
		if err != nil {
			return fmt.Errorf("mark booking cancelled failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrBookingNotCancellable
		}

		slotFilter := bson.M{
			"id": booking.DoctorID,
			"schedules": bson.M{
				"$elemMatch": bson.M{
					"date": booking.Date,
					"slots": bson.M{
						"$elemMatch": bson.M{
							"id":        booking.SlotID,
							"bookingId": booking.ID,
							"status":    models.SlotScheduled,
						},
					},
				},
			},
		}

		update := bson.M{
			"$set": bson.M{
				"schedules.$[d].slots.$[s].status":    models.SlotAvailable,
				"schedules.$[d].slots.$[s].patientId": "",
				"schedules.$[d].slots.$[s].bookingId": "",
			},
		}

		opts := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"d.date": booking.Date},
				bson.M{"s.id": booking.SlotID, "s.bookingId": booking.ID},
			},
		})

		res, err = r.doctorColl.UpdateOne(sc, slotFilter, update, opts)
		if err != nil {
			return fmt.Errorf("release slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotUnavailable
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrBookingNotCancellable || err == ErrSlotUnavailable {
			return err
		}
		return fmt.Errorf("cancellation transaction failed: %w", err)
	}

	return nil
}
