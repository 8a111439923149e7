// seed genera el script SQL del catálogo inicial: planes, un tenant de
// demostración con su usuario admin y los entitlements de sus módulos.
//
// Uso: go run ./cmd/seed [password-admin-demo]
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agropet/agropet-api/internal/domain/entity"
)

type planSeed struct {
	slug        string
	name        string
	description string
	price       string
	isPremium   bool
	modules     []string
}

// Catálogo de planes. El ID de cada plan es un UUID v5 derivado del slug,
// así los reruns del seed producen los mismos IDs y el ON CONFLICT aplica.
var plans = []planSeed{
	{
		slug:        "plan-pet-basico",
		name:        "Pet Básico",
		description: "Paseadores y guardería para negocios pequeños",
		price:       "49.90",
		modules:     []string{entity.ModulePetSitter, entity.ModuleCreche},
	},
	{
		slug:        "plan-clinica",
		name:        "Clínica",
		description: "Gestión veterinaria completa",
		price:       "99.90",
		modules:     []string{entity.ModuleClinica, entity.ModulePetSitter, entity.ModuleCreche},
	},
	{
		slug:        "plan-agro",
		name:        "Agro",
		description: "Ganadería: equinos, leche y corte",
		price:       "129.90",
		modules:     []string{entity.ModuleEquinos, entity.ModuleLeite, entity.ModuleCorte},
	},
	{
		slug:        "plan-premium",
		name:        "Premium",
		description: "Todos los módulos sin restricción",
		price:       "199.90",
		isPremium:   true,
		modules:     entity.AllModules,
	},
}

// planID deriva el UUID estable de un plan a partir de su slug.
func planID(slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("agropet/"+slug)).String()
}

func main() {
	adminPassword := "demo1234"
	if len(os.Args) > 1 {
		adminPassword = os.Args[1]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar hash bcrypt: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial: planes, tenant demo y entitlements\n")
	out.WriteString("-- Generado por cmd/seed\n\n")

	// 1. Planes
	out.WriteString("-- 1. Planes\n")
	out.WriteString("INSERT INTO plans (id, name, description, price, is_premium, allowed_modules) VALUES\n")
	for i, p := range plans {
		sep := ","
		if i == len(plans)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', %s, %t, ARRAY[%s]::text[])%s -- %s\n",
			planID(p.slug), escapeSQL(p.name), escapeSQL(p.description), p.price, p.isPremium, sqlArray(p.modules), sep, p.slug)
	}
	out.WriteString("ON CONFLICT (id) DO UPDATE SET\n")
	out.WriteString("  name = EXCLUDED.name, description = EXCLUDED.description,\n")
	out.WriteString("  price = EXCLUDED.price, is_premium = EXCLUDED.is_premium,\n")
	out.WriteString("  allowed_modules = EXCLUDED.allowed_modules;\n\n")

	// 2. Tenant demo en TRIAL con su admin y módulos del plan clínica
	tenantID := uuid.NewString()
	adminID := uuid.NewString()

	out.WriteString("-- 2. Tenant de demostración (TRIAL de 3 días)\n")
	fmt.Fprintf(out, "INSERT INTO tenants (id, name, slug, document, plan_id, subscription_status, trial_ends_at)\n")
	fmt.Fprintf(out, "VALUES ('%s', 'Clínica Demo', 'clinica-demo', NULL, '%s', '%s', now() + interval '3 days')\n",
		tenantID, planID("plan-clinica"), entity.SubscriptionTrial)
	out.WriteString("ON CONFLICT (slug) DO NOTHING;\n\n")

	fmt.Fprintf(out, "INSERT INTO users (id, tenant_id, name, email, password_hash, role)\n")
	fmt.Fprintf(out, "SELECT '%s', id, 'Admin Demo', 'admin@clinica-demo.test', '%s', '%s'\n",
		adminID, string(hash), entity.RoleAdmin)
	out.WriteString("FROM tenants WHERE slug = 'clinica-demo'\n")
	out.WriteString("ON CONFLICT (email) DO NOTHING;\n\n")

	out.WriteString("-- 3. Entitlements del tenant demo (expiran con el trial)\n")
	for _, m := range []string{entity.ModuleClinica, entity.ModulePetSitter, entity.ModuleCreche} {
		fmt.Fprintf(out, "INSERT INTO tenant_modules (tenant_id, module_id, is_active, expires_at)\n")
		fmt.Fprintf(out, "SELECT id, '%s', true, now() + interval '3 days' FROM tenants WHERE slug = 'clinica-demo'\n", m)
		out.WriteString("ON CONFLICT (tenant_id, module_id) DO UPDATE SET\n")
		out.WriteString("  is_active = true, expires_at = EXCLUDED.expires_at;\n")
	}

	fmt.Printf("Generado %s: %d planes, tenant demo 'clinica-demo' (admin@clinica-demo.test / %s)\n",
		outPath, len(plans), adminPassword)
}

func sqlArray(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + escapeSQL(s) + "'"
	}
	return strings.Join(quoted, ", ")
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
