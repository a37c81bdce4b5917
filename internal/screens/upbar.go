package screens

import (
	"sync"
	"time"

	"flappy-fish/internal/assets"
	"flappy-fish/internal/audio"
	"flappy-fish/internal/input"
	"flappy-fish/internal/scene"
)

const (
	barY       = 0.9
	iconSize   = 0.18
	firstHeart = -0.85
)

// UpBar is the HUD drawn over a level: lives, coins, back and key buttons and
// a red flash after each lost life.
type UpBar struct {
	base
	mat    *scene.Object
	coin   *scene.Object
	hearts []*scene.Object
	back   *button
	key    *button
	red    *scene.Object

	mu     sync.Mutex
	failAt time.Time
}

func NewUpBar() *UpBar { return &UpBar{} }

func (u *UpBar) Init(env Env) error {
	u.setup(env, 2)

	u.red = scene.NewObject(2, 2, scene.SpriteNormal, env.Aspect)
	u.red.SetVisible(false)
	red, err := u.fullScreen("red_screen")
	if err != nil {
		return err
	}
	u.texture(StateNormal, scene.TextureSimple, red, u.red)
	if err := u.place(1, u.red); err != nil {
		return err
	}

	u.mat = scene.NewObject(2, 0.2, scene.SpriteNormal, env.Aspect)
	u.mat.SetPosition(0, barY)
	mat, err := u.image("up_bar")
	if err != nil {
		return err
	}
	u.texture(StateNormal, scene.TextureSimple, mat, u.mat)
	if err := u.place(0, u.mat); err != nil {
		return err
	}

	if u.back, err = u.newButton(iconSize, 0.85, barY, "back", "back_pressed", env.Listener.ReturnToMenu); err != nil {
		return err
	}
	if err := u.place(0, u.back.obj); err != nil {
		return err
	}
	if u.key, err = u.newButton(iconSize, 0.55, barY, "key", "key_pressed", env.Listener.KeyPressed); err != nil {
		return err
	}
	if err := u.place(0, u.key.obj); err != nil {
		return err
	}

	heart, err := u.image("heart")
	if err != nil {
		return err
	}
	u.hearts = make([]*scene.Object, env.Settings.Game.MaxLives)
	for i := range u.hearts {
		h := scene.NewObject(iconSize, iconSize, scene.SpriteSquare, env.Aspect)
		h.SetPosition(firstHeart+float32(i)*iconSize, barY)
		h.SetVisible(i < env.Lives)
		u.hearts[i] = h
		if err := u.place(0, h); err != nil {
			return err
		}
	}
	u.texture(StateNormal, scene.TextureSimple, heart, u.hearts...)

	u.coin = scene.NewObject(iconSize, iconSize, scene.SpriteSquare, env.Aspect)
	u.coin.SetPosition(0.2, barY)
	coin, err := u.image("coin")
	if err != nil {
		return err
	}
	u.texture(StateNormal, scene.TextureSimple, assets.CoinBadge(resize(coin, 64, 64), env.Coins), u.coin)
	return u.place(0, u.coin)
}

// SetLives shows the first n hearts. showFail flashes the red overlay and plays the mistake cue.
func (u *UpBar) SetLives(n int, showFail bool) {
	if showFail {
		u.mu.Lock()
		u.failAt = time.Now()
		u.mu.Unlock()
		u.red.SetVisible(true)
		u.env.Audio.Play(audio.CueMistake)
	}
	for i, h := range u.hearts {
		h.SetVisible(i < n)
	}
}

// Hearts reports how many hearts are visible.
func (u *UpBar) Hearts() int {
	n := 0
	for _, h := range u.hearts {
		if h.Visible() {
			n++
		}
	}
	return n
}

func (u *UpBar) FailVisible() bool {
	return u.red.Visible()
}

func (u *UpBar) BeforeDraw(now time.Time) {
	u.mu.Lock()
	since := now.Sub(u.failAt)
	u.mu.Unlock()
	if u.red.Visible() && since > u.env.Settings.HUD.FailFlash.Duration {
		u.red.SetVisible(false)
	}
}

func (u *UpBar) Touch(ev input.Event) {
	touchButtons(ev, u.env.Audio, u.back, u.key)
}
