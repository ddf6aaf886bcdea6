package banner

import (
	"fmt"

	"arenadb/pkg/config"
)

const banner = `
 █████╗ ██████╗ ███████╗███╗   ██╗ █████╗     ██████╗ ██████╗
██╔══██╗██╔══██╗██╔════╝████╗  ██║██╔══██╗    ██╔══██╗██╔══██╗
███████║██████╔╝█████╗  ██╔██╗ ██║███████║    ██║  ██║██████╔╝
██╔══██║██╔══██╗██╔══╝  ██║╚██╗██║██╔══██║    ██║  ██║██╔══██╗
██║  ██║██║  ██║███████╗██║ ╚████║██║  ██║    ██████╔╝██████╔╝
╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝    ╚═════╝ ╚═════╝
`

// Print displays the startup banner with the effective configuration.
func Print(cfg *config.Config, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", cfg.Addr())
	fmt.Printf("DB Path:  %s\n", cfg.Server.DBPath)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	if cfg.Provider.GatewayOrigin != "" {
		fmt.Printf("Gateway:  %s\n", cfg.Provider.GatewayOrigin)
	} else {
		fmt.Println("Gateway:  MISSING (turn requests will fail; set provider.gateway_origin)")
	}
	if cfg.Backup.WebhookURL != "" {
		fmt.Printf("Backups:  %s (cron %s)\n", cfg.Backup.WebhookURL, cfg.Backup.Cron)
	} else {
		fmt.Println("Backups:  disabled (set ARENA_BACKUP_WEBHOOK_URL to enable)")
	}
	if cfg.Server.TLS.CertFile != "" && cfg.Server.TLS.KeyFile != "" {
		fmt.Println("TLS:      configured")
	} else {
		fmt.Println("TLS:      unconfigured")
	}

	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl -X POST 'http://localhost%s/api/arena/turn' -d '{\"userInput\":\"你好\",\"a\":{\"mode\":\"baseline\"},\"b\":{\"mode\":\"method\",\"methodId\":\"template_system\"},\"model\":{\"provider\":\"openai\",\"model\":\"gpt-4o-mini\"}}'\n", cfg.Addr())
	fmt.Printf("curl 'http://localhost%s/v1/threads'\n", cfg.Addr())

	fmt.Println("\n== Logs: =================================================")
}
