package services

import (
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/token"
)

// Decision is the outcome of a capability check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// CanAddProduct permits only sellers and admins to create products.
func CanAddProduct(claims *token.Claims) Decision {
	if claims.Role == models.RoleSeller || claims.Role == models.RoleAdmin {
		return allow()
	}
	return deny("only sellers or admins can add products")
}

// CanMutateProduct permits admins, and the owning seller, to update or
// delete a product. Invoked before the mutation and shared by both paths.
func CanMutateProduct(claims *token.Claims, p *models.Product) Decision {
	if claims.Role == models.RoleAdmin {
		return allow()
	}
	if claims.Role == models.RoleSeller && p.Seller.SellerID == claims.ID {
		return allow()
	}
	return deny("you do not own this product")
}
