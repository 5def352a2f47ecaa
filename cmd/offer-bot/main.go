package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/offer-bot/internal/config"
	"github.com/darkkaiser/offer-bot/internal/pkg/version"
	"github.com/darkkaiser/offer-bot/internal/service"
	"github.com/darkkaiser/offer-bot/internal/service/api"
	"github.com/darkkaiser/offer-bot/internal/service/bot"
	"github.com/darkkaiser/offer-bot/internal/service/offer"
	"github.com/darkkaiser/offer-bot/internal/service/scraper"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
)

const banner = `
   ___   __  __             ____        _
  / _ \ / _|/ _| ___ _ __  | __ )  ___ | |_
 | | | | |_| |_ / _ \ '__| |  _ \ / _ \| __|
 | |_| |  _|  _|  __/ |    | |_) | (_) | |_
  \___/|_| |_|  \___|_|    |____/ \___/ \__|
                                        %s
                                 developed by DarkKaiser
--------------------------------------------------------------------------------
`

// options 명령행 옵션입니다.
type options struct {
	ConfigFile string `short:"c" long:"config" default:"offer-bot.json" description:"설정 파일 경로"`
	Version    bool   `short:"v" long:"version" description:"버전 정보를 출력하고 종료합니다"`
}

// parseOptions 명령행 인자를 파싱합니다. -h/--help가 주어지면 flags.ErrHelp 타입의 에러를 반환합니다.
func parseOptions(args []string) (*options, error) {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return &opts, nil
}

// newServices 설정에 따라 실행할 서비스 목록을 구성합니다.
// 봇과 API는 같은 Extractor를 공유하며, API는 api.enabled가 true일 때만 포함됩니다.
func newServices(appConfig *config.AppConfig, buildInfo version.Info) []service.Service {
	fetcher := scraper.NewHTTPFetcher(scraper.WithUserAgent(appConfig.Scraper.UserAgent))
	extractor := offer.NewExtractor(scraper.New(fetcher, scraper.WithMaxBodyBytes(appConfig.Scraper.MaxBodyBytes)))

	services := []service.Service{
		bot.NewService(appConfig, extractor),
	}
	if appConfig.API.Enabled {
		services = append(services, api.NewService(appConfig, extractor, buildInfo))
	}

	return services
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	buildInfo := version.Get()

	if opts.Version {
		fmt.Println(buildInfo.String())
		return
	}

	appConfig, err := config.LoadWithFile(opts.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", applog.Fields{
		"version":     buildInfo.String(),
		"config_file": opts.ConfigFile,
		"api_enabled": appConfig.API.Enabled,
		"env":         map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range newServices(appConfig, buildInfo) {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()

			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 신호 수신: 서비스 종료 시작")
	cancel()
	serviceStopWG.Wait()
	applog.WithComponent("main").Info("서버 종료 완료")
}
