package vault

import (
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coffertest"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/orm"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVaultModel(t *testing.T) {
	Convey("Given a board of two", t, func() {
		alice, bob := coffertest.RandomAddr(), coffertest.RandomAddr()
		v := &Vault{Members: []coffer.Address{alice, bob}}

		Convey("It is valid", func() {
			So(v.Validate(), ShouldBeNil)
			So(v.TotalSigners(), ShouldEqual, 2)
		})

		Convey("Membership is exact", func() {
			So(v.IsMember(alice), ShouldBeTrue)
			So(v.IsMember(bob), ShouldBeTrue)
			So(v.IsMember(coffertest.RandomAddr()), ShouldBeFalse)
			So(v.IsMember(nil), ShouldBeFalse)
		})

		Convey("A repeated member is rejected", func() {
			v.Members = append(v.Members, alice)
			So(errors.ErrDuplicate.Is(v.Validate()), ShouldBeTrue)
		})

		Convey("A long name is rejected", func() {
			v.Name = string(make([]byte, maxNameLength+1))
			So(errors.ErrInput.Is(v.Validate()), ShouldBeTrue)
		})
	})
}

func TestVaultAddress(t *testing.T) {
	Convey("Each vault has its own custody address", t, func() {
		one, two := orm.EncodeSequence(1), orm.EncodeSequence(2)
		So(Address(one), ShouldResemble, Condition(one).Address())
		So(Address(one), ShouldNotResemble, Address(two))
		So(Address(one).Validate(), ShouldBeNil)

		ext, typ, data, err := Condition(one).Parse()
		So(err, ShouldBeNil)
		So(ext, ShouldEqual, "vault")
		So(typ, ShouldEqual, "seq")
		So(data, ShouldResemble, one)
	})
}

func TestProposalModel(t *testing.T) {
	Convey("Given a proposal", t, func() {
		alice := coffertest.RandomAddr()
		p := &Proposal{
			VaultID:     orm.EncodeSequence(1),
			ID:          orm.EncodeSequence(1),
			Beneficiary: coffertest.RandomAddr(),
			Amount:      coin.NewCoinp(1, 0, "CASH"),
		}
		So(p.Validate(), ShouldBeNil)
		So(p.NoOfApproval(), ShouldEqual, 0)

		Convey("Approvals are counted", func() {
			p.ApprovedBy = append(p.ApprovedBy, alice)
			So(p.Validate(), ShouldBeNil)
			So(p.NoOfApproval(), ShouldEqual, 1)
			So(p.HasApproved(alice), ShouldBeTrue)
			So(p.HasApproved(p.Beneficiary), ShouldBeFalse)
		})

		Convey("An approver counts once", func() {
			p.ApprovedBy = []coffer.Address{alice, alice}
			So(errors.ErrDuplicate.Is(p.Validate()), ShouldBeTrue)
		})

		Convey("Amount must be positive", func() {
			p.Amount = coin.NewCoinp(0, 0, "CASH")
			So(ErrInvalidAmount.Is(p.Validate()), ShouldBeTrue)
		})

		Convey("Beneficiary is required", func() {
			p.Beneficiary = nil
			So(ErrInvalidBeneficiary.Is(p.Validate()), ShouldBeTrue)
		})
	})
}

func TestProposalKeyOrdering(t *testing.T) {
	Convey("Proposal keys group by vault and sort by ID", t, func() {
		k1 := proposalKey(orm.EncodeSequence(1), orm.EncodeSequence(2))
		k2 := proposalKey(orm.EncodeSequence(1), orm.EncodeSequence(10))
		k3 := proposalKey(orm.EncodeSequence(2), orm.EncodeSequence(1))
		So(len(k1), ShouldEqual, 16)
		So(string(k1) < string(k2), ShouldBeTrue)
		So(string(k2) < string(k3), ShouldBeTrue)
	})
}
