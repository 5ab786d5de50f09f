package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	log "log/slog"

	"gamesight/internal/audio"
)

// external players tried when in-process playback fails, with flags that keep
// them from opening a window
var fallbackPlayers = []struct {
	bin  string
	args []string
}{
	{"mpg123", []string{"-q"}},
	{"mpv", []string{"--no-video", "--no-audio-display"}},
	{"ffplay", []string{"-autoexit", "-nodisp"}},
}

// Player plays synthesized mp3 files, ducking other audio streams while the
// reply is audible when a Ducker is attached.
type Player struct {
	Ducker *audio.Ducker
}

func (p *Player) Play(ctx context.Context, path string) error {
	if p.Ducker != nil {
		if err := p.Ducker.DuckOthers(ctx, 0.3, 200*time.Millisecond); err != nil {
			log.Warn("Failed to duck other streams", "err", err)
		}
		defer func() {
			if err := p.Ducker.UnduckOthers(context.Background(), 200*time.Millisecond); err != nil {
				log.Warn("Failed to restore stream volumes", "err", err)
			}
		}()
	}

	if err := playInProcess(path); err == nil {
		return nil
	} else {
		log.Debug("In-process playback failed, trying external players", "err", err)
	}

	for _, player := range fallbackPlayers {
		args := append(append([]string(nil), player.args...), path)
		cmd := exec.CommandContext(ctx, player.bin, args...)
		cmd.Stdout = nil
		cmd.Stderr = nil
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	return fmt.Errorf("áudio gerado em %s; instale mpg123, mpv ou ffplay para reprodução automática", path)
}

func playInProcess(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}

	done := make(chan bool)
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		done <- true
	})))
	<-done

	return nil
}
