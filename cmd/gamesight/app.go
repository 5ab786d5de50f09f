package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	log "log/slog"

	"gamesight/internal/agent"
	"gamesight/internal/audio"
	"gamesight/internal/config"
	"gamesight/internal/history"
	"gamesight/internal/notify"
	"gamesight/internal/ptt"
	"gamesight/internal/repl"
	"gamesight/internal/stt"
	"gamesight/internal/tts"
)

type app struct {
	cfg *config.Config
	bot *agent.Agent

	store     *history.Store
	sessionID string

	ttsEnabled bool
	synth      *tts.Synthesizer
	player     *tts.Player

	recorder *audio.Recorder
	capture  *ptt.Capture
	engine   stt.Engine

	triggers  chan struct{}
	recording atomic.Bool
}

// initSpeech wires TTS unconditionally (toggled at runtime) and STT only when
// enabled. A missing native audio stack downgrades voice input to a warning.
func (a *app) initSpeech() {
	a.synth = tts.NewSynthesizer(a.cfg.TTSVoice, a.cfg.AudioOutDir)
	a.player = &tts.Player{}
	if a.cfg.DuckOthers {
		a.player.Ducker = audio.NewDucker([]string{"gamesight"}, 20)
	}

	if !a.cfg.EnableSTT {
		return
	}

	rec := audio.NewRecorder()
	if err := rec.Init(); err != nil {
		log.Warn("Audio capture unavailable, voice input disabled", "err", err)
		fmt.Println("⚠️  Áudio indisponível; entrada por voz desativada")
		return
	}
	a.recorder = rec

	trigger, maxDur, err := a.newTrigger()
	if err != nil {
		log.Warn("Push-to-talk unavailable, voice input disabled", "err", err)
		fmt.Println("⚠️  Push-to-talk indisponível; entrada por voz desativada")
		rec.Close()
		a.recorder = nil
		return
	}

	a.capture = &ptt.Capture{
		Recorder: rec,
		Trigger:  trigger,
		Gate:     audio.DefaultGate(),
		MaxDur:   maxDur,
	}

	if a.cfg.WhisperModel != "" {
		engine, err := stt.NewWhisper(a.cfg.WhisperModel, a.cfg.STTLanguage)
		if err != nil {
			log.Warn("Whisper model unavailable, falling back to remote transcription", "err", err)
			a.engine = stt.NewGoogle(a.cfg.STTLanguage, a.cfg.GoogleKey)
		} else {
			a.engine = engine
		}
	} else {
		a.engine = stt.NewGoogle(a.cfg.STTLanguage, a.cfg.GoogleKey)
	}
}

func (a *app) newTrigger() (ptt.Trigger, time.Duration, error) {
	switch a.cfg.PTTMode {
	case "xbox":
		fmt.Println("Modo: Controle Xbox")
		t, err := ptt.NewXbox(a.cfg.XboxButton)
		return t, a.cfg.MaxRecord, err
	case "timer":
		fmt.Println("Modo: Janela fixa")
		return ptt.NewTimer(a.cfg.RecordWindow), a.cfg.RecordWindow + time.Second, nil
	default:
		fmt.Println("Modo: Teclado")
		return ptt.NewKeyboard(a.cfg.PTTKey), a.cfg.MaxRecord, nil
	}
}

func (a *app) closeSpeech() {
	if a.capture != nil {
		a.capture.Trigger.Close()
	}
	if a.engine != nil {
		a.engine.Close()
	}
	if a.recorder != nil {
		a.recorder.Close()
	}
}

func (a *app) banner() {
	fmt.Println("Game Agent initialized!")
	fmt.Println("============================================================")
	fmt.Println("Welcome to Gamesight - AI-powered game analysis")
	if a.ttsEnabled {
		fmt.Println("🔊 Text-to-Speech: ENABLED")
	}
	if a.capture != nil {
		fmt.Println("🎤 Speech-to-Text: ENABLED")
	}
	fmt.Println("============================================================")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  - 'analyze this game screen' - Takes screenshot and analyzes it")
	fmt.Println("  - 'tts on/off' - Enable/disable text-to-speech")
	if a.capture != nil {
		fmt.Println("  - 'voice' or 'v' - Ask by voice (push-to-talk)")
	}
	fmt.Println("  - 'voices' - List available pt-BR voices")
	fmt.Println("  - 'quit' or 'exit' - Exit the program")
	fmt.Println()
}

func (a *app) run(lines <-chan string) {
	ctx := context.Background()

	fmt.Print("\n> ")

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				fmt.Println("\nGoodbye!")
				return
			}
			if !a.handle(ctx, line) {
				return
			}
		case <-a.triggers:
			a.handleVoice(ctx)
		}

		fmt.Print("\n> ")
	}
}

// handle runs one command; false means quit.
func (a *app) handle(ctx context.Context, line string) bool {
	cmd, text := repl.Parse(line)

	switch cmd {
	case repl.CmdNone:
		return true

	case repl.CmdQuit:
		fmt.Println("\nGoodbye!")
		return false

	case repl.CmdTTSOn:
		a.ttsEnabled = true
		fmt.Println("🔊 Text-to-Speech ENABLED")

	case repl.CmdTTSOff:
		a.ttsEnabled = false
		fmt.Println("🔇 Text-to-Speech DISABLED")

	case repl.CmdVoice:
		a.handleVoice(ctx)

	case repl.CmdVoices:
		a.listVoices(ctx)

	case repl.CmdAsk:
		a.ask(ctx, text)
	}

	return true
}

func (a *app) ask(ctx context.Context, text string) {
	fmt.Println("\nProcessing your request...")

	reply, err := a.bot.Run(ctx, text)
	if err != nil {
		log.Error("Agent turn failed", "err", err)
		fmt.Printf("\nError: %v\n", err)
		return
	}

	fmt.Println("\n============================================================")
	fmt.Printf("\nAgent: %s\n", reply)
	fmt.Println("============================================================")

	a.snapshot()

	if a.ttsEnabled {
		a.speak(ctx, reply)
	}
}

func (a *app) speak(ctx context.Context, text string) {
	fmt.Println("\n🔊 Playing audio...")

	path, err := a.synth.Synthesize(text)
	if err != nil {
		log.Error("Failed to synthesize speech", "err", err)
		fmt.Printf("⚠️  Error playing audio: %v\n", err)
		return
	}

	if err := a.player.Play(ctx, path); err != nil {
		fmt.Printf("⚠️  %v\n", err)
	}
}

func (a *app) handleVoice(ctx context.Context) {
	if a.capture == nil {
		fmt.Println("⚠️  Entrada por voz desativada (ENABLE_STT=false)")
		return
	}

	if !a.recording.CompareAndSwap(false, true) {
		return // already recording
	}
	defer a.recording.Store(false)

	notify.Beep()
	fmt.Println("🎤 Segure a tecla/botão e fale...")

	clip, err := a.capture.Run(ctx)
	switch {
	case errors.Is(err, ptt.ErrSilence):
		fmt.Println("⚠️  Só ouvi silêncio, tente novamente")
		return
	case errors.Is(err, audio.ErrNoAudio):
		fmt.Println("⚠️  Nenhum áudio gravado, tente novamente")
		return
	case err != nil:
		log.Error("Failed to record", "err", err)
		return
	}

	log.Info("Recorded", "duration", clip.Duration())

	if path, err := audio.WriteWAV(a.cfg.AudioInDir, clip); err != nil {
		log.Warn("Failed to save capture", "err", err)
	} else {
		log.Debug("Saved capture", "path", path)
	}

	fmt.Println("🔄 Transcrevendo áudio...")

	tctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	text, err := a.engine.Transcribe(tctx, clip)
	switch {
	case errors.Is(err, stt.ErrUnrecognized):
		fmt.Println("⚠️  Não consegui entender o áudio")
		return
	case err != nil:
		log.Error("Failed to transcribe", "err", err)
		fmt.Printf("⚠️  Erro durante transcrição: %v\n", err)
		return
	}

	fmt.Printf("✓ Transcrição: %s\n", text)

	a.ask(ctx, text)
}

func (a *app) listVoices(ctx context.Context) {
	voices, err := tts.ListVoices(ctx, "pt-BR")
	if err != nil {
		log.Error("Failed to list voices", "err", err)
		return
	}

	fmt.Println("\nVozes disponíveis em Português Brasileiro:")
	fmt.Println("============================================================")
	for _, v := range voices {
		fmt.Printf("- %s\n", v.ShortName)
		fmt.Printf("  Gênero: %s\n", v.Gender)
		fmt.Printf("  Nome: %s\n\n", v.FriendlyName)
	}
}

func (a *app) snapshot() {
	if a.store == nil {
		return
	}

	err := a.store.Save(a.sessionID, history.Record{
		Model:    a.cfg.Model,
		Messages: a.bot.Transcript(),
	})
	if err != nil {
		log.Warn("Failed to persist transcript", "err", err)
	}
}
