package dedupe_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	dedupe "github.com/okian/applicants/internal/domain/dedupe"
	"github.com/okian/applicants/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func applicant(name, email string, score float64) model.Applicant {
	return model.NewApplicant(name, email, time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC), score)
}

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()

		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should be empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Len(), ShouldEqual, 0)
				So(d.Pool(ctx), ShouldBeEmpty)
			})
		})

		Convey("When creating a deduper with a capacity hint", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(1000))
			So(d, ShouldNotBeNil)
			So(d.Len(), ShouldEqual, 0)
		})

		Convey("When putting distinct emails", func() {
			d := dedupe.NewInMemoryDeduper()
			for i := 0; i < 5; i++ {
				replaced := d.Put(ctx, applicant("A B", fmt.Sprintf("a%d@x.com", i), float64(i)))
				So(replaced, ShouldBeFalse)
			}

			Convey("Then every applicant survives in input order", func() {
				pool := d.Pool(ctx)
				So(d.Len(), ShouldEqual, 5)
				for i, a := range pool {
					So(a.Email, ShouldEqual, fmt.Sprintf("a%d@x.com", i))
				}
			})
		})

		Convey("When the same email is put twice", func() {
			d := dedupe.NewInMemoryDeduper()
			d.Put(ctx, applicant("Ana Pop", "ana@x.com", 5))
			d.Put(ctx, applicant("Dan Ion", "dan@x.com", 6))
			replaced := d.Put(ctx, applicant("Ana Popa", "ana@x.com", 8))

			Convey("Then the later record wins and keeps the first slot", func() {
				So(replaced, ShouldBeTrue)
				pool := d.Pool(ctx)
				So(len(pool), ShouldEqual, 2)
				So(pool[0].FullName, ShouldEqual, "Ana Popa")
				So(pool[0].RawScore, ShouldEqual, 8)
				So(pool[1].Email, ShouldEqual, "dan@x.com")
			})
		})

		Convey("When the returned pool is modified", func() {
			d := dedupe.NewInMemoryDeduper()
			d.Put(ctx, applicant("Ana Pop", "ana@x.com", 5))
			pool := d.Pool(ctx)
			pool[0].AdjustedScore = 100

			Convey("Then the deduper is unaffected", func() {
				So(d.Pool(ctx)[0].AdjustedScore, ShouldEqual, 5)
			})
		})

		Convey("When emails differ only by case", func() {
			d := dedupe.NewInMemoryDeduper()
			d.Put(ctx, applicant("Ana Pop", "ana@x.com", 5))
			d.Put(ctx, applicant("Ana Pop", "Ana@x.com", 5))

			Convey("Then they are distinct identities", func() {
				So(d.Len(), ShouldEqual, 2)
			})
		})
	})
}

func TestCollapse(t *testing.T) {
	Convey("Given records with repeated emails", t, func() {
		ctx := context.Background()
		records := []model.Applicant{
			applicant("Ana Pop", "ana@x.com", 5),
			applicant("Dan Ion", "dan@x.com", 6),
			applicant("Ana Pop", "ana@x.com", 8),
			applicant("Dan Ionescu", "dan@x.com", 2),
			applicant("Eva Lup", "eva@x.com", 9),
		}

		pool, replaced := dedupe.Collapse(ctx, records)

		Convey("Then the pool is no larger than the input", func() {
			So(len(pool), ShouldBeLessThanOrEqualTo, len(records))
			So(len(pool), ShouldEqual, 3)
			So(replaced, ShouldEqual, 2)
		})

		Convey("Then each survivor equals the last record with its email", func() {
			last := map[string]model.Applicant{}
			for _, r := range records {
				last[r.Email] = r
			}
			for _, a := range pool {
				So(a, ShouldResemble, last[a.Email])
			}
		})
	})

	Convey("Given no records", t, func() {
		pool, replaced := dedupe.Collapse(context.Background(), nil)
		So(pool, ShouldBeEmpty)
		So(replaced, ShouldEqual, 0)
	})
}
