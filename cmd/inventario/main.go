// Command inventario es el cliente de línea de comandos de la API de
// inventario: sesión persistida, descarga de la plantilla de carga masiva,
// importación de archivos diligenciados y consultas de empresas y productos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/client/api"
	"github.com/nicklcsdev/inventario-lite/internal/client/authz"
	"github.com/nicklcsdev/inventario-lite/internal/client/carga"
	"github.com/nicklcsdev/inventario-lite/internal/client/session"
	"github.com/nicklcsdev/inventario-lite/internal/excel"
	"github.com/nicklcsdev/inventario-lite/pkg/config"
	"github.com/nicklcsdev/inventario-lite/pkg/logger"
)

const uso = `uso: inventario <comando> [flags]

comandos:
  login      -email <email> -password <password>
  logout
  plantilla  -o <archivo.xlsx>
  importar   -archivo <archivo.xlsx> -nit <NIT>
  empresas
  productos  [-nit <NIT>]
  reporte    [-nit <NIT>] [-o <archivo.pdf>] [-email <destinatario>]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, uso)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	sesion := session.NewStore(rutaSesion(cfg))
	if err := sesion.Restaurar(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// En la CLI "navegar" al login expirado es avisar: la próxima invocación
	// ya arranca sin sesión porque el teardown la borró del disco.
	cliente := api.New(cfg.Cliente.APIBaseURL, sesion, func(ruta string) {
		if ruta == api.RutaLoginExpirada {
			fmt.Fprintln(os.Stderr, "la sesión expiró; vuelva a ejecutar 'inventario login'")
		}
	})

	app := &cli{cfg: cfg, sesion: sesion, api: cliente}
	if err := app.ejecutar(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cli struct {
	cfg    *config.Config
	sesion *session.Store
	api    *api.Cliente
}

func (a *cli) ejecutar(ctx context.Context, comando string, args []string) error {
	switch comando {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.sesion.Logout()
	case "plantilla":
		return a.plantilla(args)
	case "importar":
		return a.importar(ctx, args)
	case "empresas":
		return a.empresas(ctx)
	case "productos":
		return a.productos(ctx, args)
	case "reporte":
		return a.reporte(ctx, args)
	default:
		fmt.Fprint(os.Stderr, uso)
		return fmt.Errorf("comando desconocido: %s", comando)
	}
}

// requerirSesion aplica el gate de autorización a los comandos protegidos.
func (a *cli) requerirSesion() error {
	estado := a.sesion.Estado()
	if authz.Decidir(estado.Autenticado(), estado.Cargando, authz.RutaProtegida) == authz.RedirigirLogin {
		return fmt.Errorf("no hay sesión activa; ejecute 'inventario login' primero")
	}
	return nil
}

func (a *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email del usuario")
	password := fs.String("password", "", "password del usuario")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("login: -email y -password son requeridos")
	}

	estado := a.sesion.Estado()
	if authz.Decidir(estado.Autenticado(), estado.Cargando, authz.RutaPublica) == authz.RedirigirDashboard {
		return fmt.Errorf("ya hay una sesión activa como %s; ejecute 'inventario logout' primero", estado.Identidad)
	}

	out, err := a.api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	rol := "externo (solo lectura)"
	if out.IsAdmin {
		rol = "admin"
	}
	fmt.Printf("sesión iniciada como %s [%s]\n", out.Email, rol)
	return nil
}

func (a *cli) plantilla(args []string) error {
	fs := flag.NewFlagSet("plantilla", flag.ExitOnError)
	salida := fs.String("o", "plantilla_inventario.xlsx", "archivo de salida")
	_ = fs.Parse(args)

	var logo []byte
	if a.cfg.Report.LogoPath != "" {
		logo, _ = os.ReadFile(a.cfg.Report.LogoPath) // sin logo no es error
	}
	libro, err := excel.GenerarPlantilla(logo)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*salida, libro, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", *salida, err)
	}
	fmt.Printf("plantilla generada: %s\n", *salida)
	return nil
}

func (a *cli) importar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("importar", flag.ExitOnError)
	archivo := fs.String("archivo", "", "archivo .xlsx diligenciado")
	nit := fs.String("nit", "", "NIT de la empresa destino")
	_ = fs.Parse(args)
	if *archivo == "" || *nit == "" {
		return fmt.Errorf("importar: -archivo y -nit son requeridos")
	}
	if err := a.requerirSesion(); err != nil {
		return err
	}

	f, err := os.Open(*archivo)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", *archivo, err)
	}
	defer f.Close()

	filas, err := excel.ParsearInventario(f, *nit)
	if err != nil {
		return err
	}

	importador := carga.NewImportador(a.api)
	reporte, err := importador.Procesar(ctx, filas, func(pct int) {
		fmt.Printf("\rprocesando... %d%%", pct)
	})
	if err != nil {
		return err
	}
	fmt.Println()

	for _, reg := range reporte.Registros {
		marca := "✔"
		if reg.Tipo == "error" {
			marca = "✖"
		}
		fmt.Printf("  %s fila %d: %s\n", marca, reg.Fila, reg.Mensaje)
	}
	fmt.Printf("carga terminada: %d exitosos, %d fallidos\n", reporte.Exitosos, reporte.Fallidos)
	if reporte.RequiereRefresco() {
		fmt.Println("el inventario cambió; consulte 'inventario productos -nit " + *nit + "'")
	}
	return nil
}

func (a *cli) empresas(ctx context.Context) error {
	if err := a.requerirSesion(); err != nil {
		return err
	}
	out, err := a.api.ListarEmpresas(ctx)
	if err != nil {
		return err
	}
	for _, e := range out.Items {
		fmt.Printf("%-15s %-30s %s\n", e.NIT, e.Nombre, e.Direccion)
	}
	fmt.Printf("%d empresas\n", len(out.Items))
	return nil
}

func (a *cli) productos(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("productos", flag.ExitOnError)
	nit := fs.String("nit", "", "NIT de la empresa (vacío = todas)")
	_ = fs.Parse(args)
	if err := a.requerirSesion(); err != nil {
		return err
	}
	out, err := a.api.ListarProductos(ctx, *nit)
	if err != nil {
		return err
	}
	for _, p := range out.Items {
		fmt.Printf("%-12s %-35s %s\n", p.Codigo, p.Nombre, formatoPrecios(p))
	}
	fmt.Printf("%d productos\n", len(out.Items))
	return nil
}

func (a *cli) reporte(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reporte", flag.ExitOnError)
	nit := fs.String("nit", "", "NIT de la empresa (vacío = todas)")
	salida := fs.String("o", "inventario_reporte.pdf", "archivo PDF de salida")
	email := fs.String("email", "", "enviar por correo en lugar de descargar")
	_ = fs.Parse(args)
	if err := a.requerirSesion(); err != nil {
		return err
	}

	if *email != "" {
		if err := a.api.EnviarReporteEmail(ctx, *email, *nit); err != nil {
			return err
		}
		fmt.Printf("reporte enviado a %s\n", *email)
		return nil
	}

	pdf, err := a.api.DescargarReportePDF(ctx, *nit)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*salida, pdf, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", *salida, err)
	}
	fmt.Printf("reporte descargado: %s\n", *salida)
	return nil
}

func formatoPrecios(p dto.ProductoResponse) string {
	s := ""
	for moneda, valor := range p.Precios {
		if s != "" {
			s += ", "
		}
		s += moneda + " " + valor.StringFixed(2)
	}
	return s
}

// rutaSesion resuelve dónde persiste la sesión: config explícita o el
// directorio de configuración del usuario.
func rutaSesion(cfg *config.Config) string {
	if cfg.Cliente.SessionPath != "" {
		return cfg.Cliente.SessionPath
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "inventario-lite", "session.json")
}
