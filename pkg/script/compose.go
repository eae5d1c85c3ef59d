package script

import "strings"

const (
	// ModelPrefix is prepended to the variant to form the hub identifier.
	ModelPrefix = "Qwen/Qwen3-ASR-"

	// DeviceAccelerated and DeviceCPU are the torch device strings written
	// into the DEVICE constant.
	DeviceAccelerated = "cuda"
	DeviceCPU         = "cpu"

	// PrecisionReduced pairs with DeviceAccelerated and PrecisionFull with
	// DeviceCPU.
	PrecisionReduced = "torch.float16"
	PrecisionFull    = "torch.float32"

	// PlaceholderInputPath is the file the generated entry point transcribes.
	PlaceholderInputPath = "input_audio.wav"
)

// Document is a composed script plus the metadata a viewer needs to label it.
type Document struct {
	Filename string `json:"filename"`
	Language string `json:"language"`
	Body     string `json:"script"`
	Config   Config `json:"config"`
}

// Render composes cfg and wraps the result with its display label.
func Render(cfg Config) Document {
	return Document{
		Filename: Filename(cfg.Mode),
		Language: "python",
		Body:     Compose(cfg),
		Config:   cfg,
	}
}

// Filename is the suggested file name shown above the script.
func Filename(mode Mode) string {
	return "asr_deploy_" + string(mode) + ".py"
}

// ModelID returns the hub identifier for variant.
func ModelID(variant ModelVariant) string {
	return ModelPrefix + string(variant)
}

// LanguageHint returns the value passed to generate_kwargs["language"].
func LanguageHint(lang Language) string {
	if lang == LanguageAuto {
		return "auto"
	}
	return "chinese"
}

// Precision returns the torch dtype literal the acceleration flag selects.
func Precision(accelerated bool) string {
	if accelerated {
		return PrecisionReduced
	}
	return PrecisionFull
}

// Compose renders the deployment script for cfg. It is total over Config:
// any mode other than realtime takes the file branch.
func Compose(cfg Config) string {
	realtime := cfg.Mode == ModeRealtime

	var b strings.Builder
	b.Grow(4096)

	b.WriteString("import torch\nimport sys\nimport os\n")
	if realtime {
		b.WriteString("import queue\nimport sounddevice as sd\nimport numpy as np\n")
	} else {
		b.WriteString("import librosa\n")
	}
	b.WriteString("from transformers import AutoModelForSpeechSeq2Seq, AutoProcessor, pipeline\n\n")

	hardware := "CPU"
	if cfg.UseAcceleration {
		hardware = "GPU"
	}
	b.WriteString("# --- Configuration ---\n")
	b.WriteString(`MODEL_ID = "` + ModelID(cfg.ModelVariant) + "\"\n")
	b.WriteString(`DEVICE = "` + cfg.Device() + `" # Using ` + hardware + "\n")
	b.WriteString("TORCH_DTYPE = " + Precision(cfg.UseAcceleration) + "\n")
	b.WriteString(`LANGUAGE = "` + LanguageHint(cfg.TargetLanguage) + "\"\n\n")

	b.WriteString(initBlock)

	if realtime {
		b.WriteString(realtimeBlock)
	} else {
		b.WriteString(fileBlock)
	}

	b.WriteString("\nif __name__ == \"__main__\":\n")
	b.WriteString("    asr_pipe = initialize_model()\n\n")
	if realtime {
		b.WriteString("    run_realtime(asr_pipe)\n")
	} else {
		b.WriteString(`    transcribe_file(asr_pipe, "` + PlaceholderInputPath + `") # Replace with your file path` + "\n")
	}
	return b.String()
}

const initBlock = `def initialize_model():
    print(f"Loading {MODEL_ID} on {DEVICE}...")

    try:
        model = AutoModelForSpeechSeq2Seq.from_pretrained(
            MODEL_ID,
            torch_dtype=TORCH_DTYPE,
            low_cpu_mem_usage=True,
            use_safetensors=True
        )
        model.to(DEVICE)
    except Exception as e:
        print(f"Error loading model: {e}")
        sys.exit(1)

    processor = AutoProcessor.from_pretrained(MODEL_ID)

    # Initialize the pipeline
    pipe = pipeline(
        "automatic-speech-recognition",
        model=model,
        tokenizer=processor.tokenizer,
        feature_extractor=processor.feature_extractor,
        max_new_tokens=128,
        chunk_length_s=30,
        batch_size=1,
        torch_dtype=TORCH_DTYPE,
        device=DEVICE,
    )

    print("Model loaded successfully!")
    return pipe

`

const fileBlock = `
# --- File-based Logic ---
def transcribe_file(pipe, filepath):
    if not os.path.exists(filepath):
        print(f"File not found: {filepath}")
        return

    print(f"Transcribing {filepath}...")

    # Transcribe
    result = pipe(
        filepath,
        generate_kwargs={"language": LANGUAGE, "task": "transcribe"}
    )

    print("\n--- Result ---")
    print(result["text"])
`

const realtimeBlock = `
# --- Real-time Streaming Logic (Basic Implementation) ---
def record_audio(duration=5, fs=16000):
    print(f"Recording for {duration} seconds...")
    recording = sd.rec(int(duration * fs), samplerate=fs, channels=1, dtype='float32')
    sd.wait()
    return recording.flatten()

def run_realtime(pipe):
    print("Starting Real-time Loop (Press Ctrl+C to stop)")
    print("Note: In Termux, direct microphone access via Python can be tricky.")
    print("Ensure Termux-API is installed or use file-based watching.")

    try:
        while True:
            # Capturing simple chunks for demo
            audio_data = record_audio(duration=5)

            # Transcribe
            result = pipe(audio_data, generate_kwargs={"language": LANGUAGE})

            os.system('clear') # Clear terminal for 'streaming' effect
            print("--- Transcript ---")
            print(result["text"])

    except KeyboardInterrupt:
        print("\nStopping...")
`
