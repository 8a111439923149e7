package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agropet/agropet-api/internal/application/dto"
	"github.com/agropet/agropet-api/internal/domain"
	"github.com/agropet/agropet-api/internal/domain/entity"
	"github.com/agropet/agropet-api/internal/domain/repository"
	"github.com/agropet/agropet-api/pkg/jwt"
	"github.com/agropet/agropet-api/pkg/slug"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de tenant y login.
type AuthUseCase struct {
	txRunner   RegistrationTxRunner
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	planRepo   repository.PlanRepository
	jwtCfg     JWTConfig
	trialDays  int
}

// NewAuthUseCase construye el caso de uso de auth.
// trialDays define la ventana de prueba asignada al registrar (TRIAL).
func NewAuthUseCase(
	txRunner RegistrationTxRunner,
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	planRepo repository.PlanRepository,
	jwtCfg JWTConfig,
	trialDays int,
) *AuthUseCase {
	if trialDays <= 0 {
		trialDays = 3
	}
	return &AuthUseCase{
		txRunner:   txRunner,
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		jwtCfg:     jwtCfg,
		trialDays:  trialDays,
	}
}

// RegisterTenant da de alta un negocio: tenant en TRIAL con trial_ends_at =
// now + días de prueba, su usuario admin (bcrypt) y una fila de entitlement
// por módulo seleccionado. Todo dentro de una transacción: si falla cualquier
// escritura no queda ningún rastro del alta.
func (uc *AuthUseCase) RegisterTenant(ctx context.Context, in dto.RegisterTenantRequest) (*dto.RegisterTenantResponse, error) {
	tenantSlug := in.Slug
	if tenantSlug == "" {
		tenantSlug = slug.Normalize(in.Name)
	}
	if err := slug.Validate(tenantSlug); err != nil {
		return nil, domain.ErrInvalidInput
	}
	for _, m := range in.Modules {
		if !entity.IsKnownModule(m) {
			return nil, domain.ErrUnknownModule
		}
	}
	if in.PlanID != "" {
		plan, err := uc.planRepo.GetByID(ctx, in.PlanID)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, domain.ErrNotFound
		}
	}
	if existing, _ := uc.tenantRepo.GetBySlug(ctx, tenantSlug); existing != nil {
		return nil, domain.ErrSlugAlreadyExists
	}
	if existing, _ := uc.userRepo.FindByEmail(ctx, in.AdminEmail); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	trialEnds := now.AddDate(0, 0, uc.trialDays)
	adminName := in.AdminName
	if adminName == "" {
		adminName = in.AdminEmail
	}

	tenant := &entity.Tenant{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Slug:               tenantSlug,
		Document:           in.Document,
		PlanID:             in.PlanID,
		SubscriptionStatus: entity.SubscriptionTrial,
		TrialEndsAt:        &trialEnds,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenant.ID,
		Email:        in.AdminEmail,
		PasswordHash: string(hash),
		Name:         adminName,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunRegistration(ctx, func(
		tenantRepo repository.TenantRepository,
		userRepo repository.UserRepository,
		moduleRepo repository.TenantModuleRepository,
	) error {
		if err := tenantRepo.Create(ctx, tenant); err != nil {
			return err
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return err
		}
		for _, m := range in.Modules {
			tm := &entity.TenantModule{
				TenantID:    tenant.ID,
				ModuleID:    m,
				IsActive:    true,
				ActivatedAt: now,
				ExpiresAt:   &trialEnds,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := moduleRepo.Create(ctx, tm); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterTenantResponse{
		Tenant: *ToTenantResponse(tenant),
		Admin:  *toUserResponse(admin),
	}, nil
}

// Login verifica email/password, genera JWT con claims de tenant y retorna token + usuario + tenant.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.TokenInput{
		UserID:     user.ID,
		TenantID:   user.TenantID,
		TenantSlug: tenant.Slug,
		Role:       user.Role,
		Email:      user.Email,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		User:   *toUserResponse(user),
		Tenant: *ToTenantResponse(tenant),
	}, nil
}

// ToTenantResponse mapea la entidad Tenant al DTO de salida.
func ToTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Slug:               t.Slug,
		Document:           t.Document,
		PlanID:             t.PlanID,
		SubscriptionStatus: t.SubscriptionStatus,
		TrialEndsAt:        t.TrialEndsAt,
		NextBillingAt:      t.NextBillingAt,
		LastPaymentAt:      t.LastPaymentAt,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
