package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mastercactapus/crosswalk/bus"
	"github.com/mastercactapus/crosswalk/crosswalk"
)

var (
	installPrefix string
	installReset  bool
	configPath    string
	logLevel      string
	dryRun        bool
	sendRedis     bool

	mainCmd = &cobra.Command{
		Use:               "crosswalk",
		Short:             "Pedestrian crossing signal controller",
		PersistentPreRunE: setLogLevel,
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Drive the signal from bus commands",
		Run:   runCrosswalk,
	}
	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install the binary, systemd unit and default config",
		Run:   runInstall,
	}
	sendCmd = &cobra.Command{
		Use:   "send (OFF|MAN|HAND|COUNTDOWN|<count>)",
		Short: "Publish a command to the configured bus",
		Args:  cobra.ExactArgs(1),
		Run:   runSend,
	}
)

func setLogLevel(cmd *cobra.Command, args []string) error {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

func runInstall(cmd *cobra.Command, args []string) {
	err := install(installPrefix, configPath, installReset)
	if err != nil {
		log.Fatalln("install:", err)
	}
}

// sendTopic picks the topic for a command word and checks that the
// controller would accept it.
func sendTopic(c *Config, word string) (string, error) {
	topic := c.StateTopic
	if _, err := strconv.ParseUint(word, 10, strconv.IntSize); err == nil {
		topic = c.CountTopic
	}
	_, err := c.Topics().Parse(topic, []byte(word))
	return topic, err
}

func runSend(cmd *cobra.Command, args []string) {
	c, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalln("load config:", err)
	}
	topic, err := sendTopic(c, args[0])
	if err != nil {
		log.Fatalln("send:", err)
	}

	if sendRedis {
		client := c.Redis.Client()
		defer client.Close()
		err = bus.PublishRedis(context.Background(), client, topic, args[0])
	} else {
		err = bus.PublishMQTT(c.MQTT, topic, args[0])
	}
	if err != nil {
		log.Fatalln("send:", err)
	}
	log.WithFields(log.Fields{"Topic": topic, "Payload": args[0]}).Infoln("sent")
}

func runCrosswalk(cmd *cobra.Command, args []string) {
	c, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalln("load config:", err)
	}

	pins, release, err := openPins(dryRun)
	if err != nil {
		log.Fatalln("open gpio:", err)
	}
	defer release()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := crosswalk.NewMetrics(reg)
	logger := log.StandardLogger()

	q := crosswalk.NewQueue(c.QueueSize, metrics, logger)
	walk, dontWalk := c.Lines()
	ctl := crosswalk.New(crosswalk.NewLines(pins, walk, dontWalk, logger), q.C(), crosswalk.Options{
		InitialDelay:  c.InitialDelay(),
		BlinkDelay:    c.BlinkDelay(),
		Count:         c.Count,
		SafeInterrupt: c.SafeInterrupt,
		Log:           logger,
		Metrics:       metrics,
	})

	done := make(chan error, 1)
	go func() { done <- ctl.Run() }()

	h := &bus.Handler{Topics: c.Topics(), Queue: q, Log: logger, Metrics: metrics}
	var stops []func()

	if c.MQTT.Broker != "" {
		src := bus.NewMQTTSource(c.MQTT, h)
		err = src.Start()
		if err != nil {
			log.Fatalln("mqtt:", err)
		}
		stops = append(stops, src.Stop)
	}
	if c.Redis.Addr != "" {
		client := c.Redis.Client()
		src := bus.NewRedisSource(client, h)
		err = src.Start(context.Background())
		if err != nil {
			log.Fatalln("redis:", err)
		}
		stops = append(stops, func() {
			src.Stop()
			client.Close()
		})
	}
	if c.Metrics.Listen != "" {
		stops = append(stops, serveMetrics(c.Metrics.Listen, newRouter(reg, ctl)))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.WithField("Signal", s).Infoln("shutting down")
		for _, stop := range stops {
			stop()
		}
		q.Close()
		err = <-done
	case err = <-done:
		for _, stop := range stops {
			stop()
		}
	}
	if err != nil {
		release()
		log.Fatalln("controller:", err)
	}
}

func main() {
	installCmd.Flags().BoolVar(&installReset, "reset", false, "Reset config. Resets configuration to default, even if a config file already exists")
	installCmd.Flags().StringVarP(&installPrefix, "prefix", "p", "", "Install prefix. Prefix to install directory, default is /")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log line writes instead of driving GPIO")
	sendCmd.Flags().BoolVar(&sendRedis, "redis", false, "Publish over Redis instead of MQTT")
	mainCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/crosswalk.conf", "Config path. The path to the configuration file")
	mainCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	mainCmd.AddCommand(runCmd, installCmd, sendCmd)
	if err := mainCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
