package auth

import (
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// DemoPassword is shared by every demo account and shown on the login page.
const DemoPassword = "Demo1234"

type demoAccount struct {
	visitor domain.Visitor
	hash    []byte
}

var (
	demoOnce     sync.Once
	demoAccounts map[string]demoAccount
)

func demoVisitors() []domain.Visitor {
	return []domain.Visitor{
		{ID: "visitor-001", Email: "visitor@demo.com", Name: "Sarah Lim", MembershipTier: domain.TierGold},
		{ID: "visitor-002", Email: "family@demo.com", Name: "The Tan Family", MembershipTier: domain.TierPlatinum},
	}
}

func loadDemoAccounts() map[string]demoAccount {
	demoOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		demoAccounts = make(map[string]demoAccount)
		for _, v := range demoVisitors() {
			demoAccounts[v.Email] = demoAccount{visitor: v, hash: hash}
		}
	})
	return demoAccounts
}

// DemoAccounts lists the demo visitors offered for one-click sign in.
func DemoAccounts() []domain.Visitor {
	return demoVisitors()
}

// checkDemoCredentials returns the demo visitor for email/password.
func checkDemoCredentials(email, password string) (domain.Visitor, bool) {
	acct, ok := loadDemoAccounts()[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return domain.Visitor{}, false
	}
	if bcrypt.CompareHashAndPassword(acct.hash, []byte(password)) != nil {
		return domain.Visitor{}, false
	}
	return acct.visitor, true
}
